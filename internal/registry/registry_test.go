package registry

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vk/manifreeze/internal/config"
	"github.com/vk/manifreeze/internal/ctxlog"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func TestLedger_RegistrationOrder(t *testing.T) {
	t.Parallel()

	ledger := New()
	ledger.AddInclude("./modules/uasyncio")
	ledger.AddModule("modules", "a.py", config.KindMpy, 0)
	ledger.AddModule("modules", "b.py", config.KindMpy, 0)

	require.Equal(t, 3, ledger.Len())
	require.Equal(t, []Include{{Path: "./modules/uasyncio"}}, ledger.Includes())

	want := []FrozenModule{
		{Dir: "modules", File: "a.py", Stem: "a", Kind: config.KindMpy},
		{Dir: "modules", File: "b.py", Stem: "b", Kind: config.KindMpy},
	}
	if diff := cmp.Diff(want, ledger.Modules()); diff != "" {
		t.Fatalf("unexpected modules (-want +got):\n%s", diff)
	}
}

func TestLedger_StemDerivation(t *testing.T) {
	t.Parallel()

	ledger := New()
	ledger.AddModule("modules", "motor_pair.py", config.KindStr, 3)
	// A leading dot is part of the name, not an extension separator.
	ledger.AddModule("modules", ".hidden", config.KindMpy, 0)

	mods := ledger.Modules()
	require.Equal(t, "motor_pair", mods[0].Stem)
	require.Equal(t, ".hidden", mods[1].Stem)
}

func TestLedger_SnapshotsAreCopies(t *testing.T) {
	t.Parallel()

	ledger := New()
	ledger.AddModule("modules", "a.py", config.KindMpy, 0)

	snapshot := ledger.Modules()
	snapshot[0].File = "mutated.py"
	require.Equal(t, "a.py", ledger.Modules()[0].File)
}

func TestValidate_Passes(t *testing.T) {
	t.Parallel()

	ledger := New()
	ledger.AddInclude("./modules/uasyncio")
	ledger.AddModule("modules", "a.py", config.KindMpy, 0)
	ledger.AddModule("modules", "b.py", config.KindMpy, 0)

	require.NoError(t, ledger.Validate(testContext()))
}

func TestValidate_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	ledger := New()
	ledger.AddModule("modules", "a.py", config.KindMpy, 0)
	ledger.AddModule("modules", "a.py", config.KindMpy, 0)

	err := ledger.Validate(testContext())
	require.Error(t, err)
	require.Contains(t, err.Error(), "'modules/a.py' is registered more than once")
}

func TestValidate_StemConflictAcrossDirs(t *testing.T) {
	t.Parallel()

	ledger := New()
	ledger.AddModule("modules", "hub.py", config.KindMpy, 0)
	ledger.AddModule("extra", "hub.py", config.KindMpy, 0)

	err := ledger.Validate(testContext())
	require.Error(t, err)
	require.Contains(t, err.Error(), "import name 'hub'")
}
