package sympath

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// The invariant under test: no matter how many applications are
// synchronized, the stored value is always the prefix plus exactly one
// directory. Earlier directories never accumulate.
func TestStoredValueInvariantProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	dirGen := gen.SliceOfN(3, gen.AlphaString().SuchThat(func(s string) bool {
		return s != ""
	})).Map(func(parts []string) string {
		return "/" + strings.Join(parts, "/")
	})

	properties.Property("stored value is prefix plus last synced dir", prop.ForAll(
		func(dirs []string) bool {
			store := newFakeStore(nil)
			checker := &fakeChecker{existing: map[string]bool{}}
			for _, d := range dirs {
				checker.existing[d] = true
			}
			service := NewService(testSettings(), store, checker)

			for _, d := range dirs {
				if err := service.UpdateApplicationPath(d); err != nil {
					return false
				}
			}

			want := symbolServer
			if len(dirs) > 0 {
				want = symbolServer + ";" + dirs[len(dirs)-1]
			}
			return store.values[testVariable] == want
		},
		gen.SliceOf(dirGen),
	))

	properties.Property("stored value always has at most two segments", prop.ForAll(
		func(dirs []string) bool {
			store := newFakeStore(nil)
			checker := &fakeChecker{existing: map[string]bool{}}
			for _, d := range dirs {
				checker.existing[d] = true
			}
			service := NewService(testSettings(), store, checker)

			for _, d := range dirs {
				if err := service.UpdateApplicationPath(d); err != nil {
					return false
				}
				if strings.Count(store.values[testVariable], ";") > 1 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(dirGen),
	))

	properties.TestingRun(t)
}
