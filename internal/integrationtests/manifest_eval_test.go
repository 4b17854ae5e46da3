package integrationtests

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vk/manifreeze/internal/config"
	"github.com/vk/manifreeze/internal/registry"
	"github.com/vk/manifreeze/internal/testutil"
)

// TestEvaluation_EndToEnd verifies the canonical scenario: a manifest that
// includes one fixed nested path and freezes every .py file in one
// directory produces exactly one registration per candidate plus the
// include, in enumeration order.
func TestEvaluation_EndToEnd(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"manifest.hcl": `
			metadata {
				description = "hub firmware modules"
				version     = "3.2.0"
			}

			include "./modules/uasyncio" {}

			freeze "./modules" {
				pattern = "*.py"
			}
		`,
		"modules/a.py":             "a = 1\n",
		"modules/b.py":             "b = 2\n",
		"modules/uasyncio/core.py": "core = 1\n",
	}

	// --- Act ---
	result := testutil.RunManifestTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.NotNil(t, result.App)

	ledger := result.App.Ledger()
	require.NotNil(t, ledger)
	require.Equal(t, 3, ledger.Len(), "two candidates plus one include")

	require.Equal(t, []registry.Include{{Path: "./modules/uasyncio"}}, ledger.Includes())

	want := []registry.FrozenModule{
		{Dir: "modules", File: "a.py", Stem: "a", Kind: config.KindMpy},
		{Dir: "modules", File: "b.py", Stem: "b", Kind: config.KindMpy},
	}
	if diff := cmp.Diff(want, ledger.Modules()); diff != "" {
		t.Fatalf("unexpected ledger (-want +got):\n%s", diff)
	}

	// The lock document carries the metadata and every registration.
	require.Contains(t, result.LockOutput, "hub firmware modules")
	require.Contains(t, result.LockOutput, "'./modules/uasyncio'")
	require.Contains(t, result.LockOutput, "'a.py'")
	require.Contains(t, result.LockOutput, "'b.py'")

	// The log records the evaluation phases.
	require.Contains(t, result.LogOutput, "Registered include.")
	require.Contains(t, result.LogOutput, "Froze module.")
	require.Contains(t, result.LogOutput, "Manifest evaluation complete.")
}

// TestEvaluation_NoCandidates verifies the emptiness guard: the fixed
// include is still registered when the scan finds nothing.
func TestEvaluation_NoCandidates(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"manifest.hcl": `
			include "./modules/uasyncio" {}

			freeze "./modules" {
				pattern = "*.py"
			}
		`,
		"modules/README.md": "no python here\n",
	}

	result := testutil.RunManifestTest(t, files)
	require.NoError(t, result.Err)

	ledger := result.App.Ledger()
	require.Equal(t, 1, ledger.Len())
	require.Empty(t, ledger.Modules())
	require.Contains(t, result.LogOutput, "No module candidates found.")
}

// TestEvaluation_NestedManifest verifies that an include descends into
// the nested manifest and its registrations land on the same ledger.
func TestEvaluation_NestedManifest(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"manifest.hcl": `
			include "./modules/uasyncio" {}

			freeze "./modules" {}
		`,
		"modules/hub.py": "hub = 1\n",
		"modules/uasyncio/manifest.hcl": `
			freeze "./core" {
				opt = 3
			}
		`,
		"modules/uasyncio/core/stream.py": "s = 1\n",
	}

	result := testutil.RunManifestTest(t, files)
	require.NoError(t, result.Err)

	mods := result.App.Ledger().Modules()
	require.Len(t, mods, 2)

	// Nested registrations come first: the include runs before the
	// including manifest's own scan.
	require.Equal(t, "core", mods[0].Dir)
	require.Equal(t, "stream.py", mods[0].File)
	require.Equal(t, 3, mods[0].Opt)
	require.Equal(t, "modules", mods[1].Dir)
	require.Equal(t, "hub.py", mods[1].File)
}

// TestEvaluation_ConflictingStems verifies that two frozen modules
// claiming the same import name fail validation after evaluation.
func TestEvaluation_ConflictingStems(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"manifest.hcl": `
			freeze "./modules" {}
			freeze "./extra" {
				pattern = "*.py"
			}
		`,
		"modules/hub.py": "hub = 1\n",
		"extra/hub.py":   "hub = 2\n",
	}

	result := testutil.RunManifestTest(t, files)
	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "ledger rejected")
	require.Contains(t, result.Err.Error(), "import name 'hub'")
}

// TestEvaluation_ParseFailurePropagates verifies that a malformed
// manifest aborts the run with no partial output.
func TestEvaluation_ParseFailurePropagates(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"manifest.hcl": `freeze "./modules" {`,
	}

	result := testutil.RunManifestTest(t, files)
	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "manifest evaluation failed")
	require.Empty(t, result.LockOutput, "no lock output may be written on failure")
}
