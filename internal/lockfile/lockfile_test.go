package lockfile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/manifreeze/internal/config"
	"github.com/vk/manifreeze/internal/registry"
)

func TestBuildAndWrite(t *testing.T) {
	t.Parallel()

	ledger := registry.New()
	ledger.AddInclude("./modules/uasyncio")
	ledger.AddModule("modules", "a.py", config.KindMpy, 3)
	ledger.AddModule("modules", "b.py", config.KindStr, 0)

	meta := &config.Metadata{Description: "hub image", Version: "3.2.0"}
	doc := Build("eval-123", meta, ledger)

	require.Equal(t, "eval-123", doc.Evaluation)
	require.Equal(t, "hub image", doc.Description)
	require.Len(t, doc.Includes, 1)
	require.Len(t, doc.Modules, 2)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))

	out := buf.String()
	require.Contains(t, out, `evaluation = 'eval-123'`)
	require.Contains(t, out, `version = '3.2.0'`)
	require.Contains(t, out, `path = './modules/uasyncio'`)
	require.Contains(t, out, `file = 'a.py'`)
	require.Contains(t, out, `stem = 'b'`)
	require.Contains(t, out, `kind = 'str'`)
}

func TestBuild_NoMetadata(t *testing.T) {
	t.Parallel()

	doc := Build("eval-456", nil, registry.New())
	require.Empty(t, doc.Description)
	require.Empty(t, doc.Version)
	require.Empty(t, doc.Includes)
	require.Empty(t, doc.Modules)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))
	require.Contains(t, buf.String(), "eval-456")
}

func TestWrite_LedgerOrderIsPreserved(t *testing.T) {
	t.Parallel()

	ledger := registry.New()
	ledger.AddModule("modules", "zeta.py", config.KindMpy, 0)
	ledger.AddModule("modules", "alpha.py", config.KindMpy, 0)

	doc := Build("eval-789", nil, ledger)
	require.Equal(t, "zeta.py", doc.Modules[0].File)
	require.Equal(t, "alpha.py", doc.Modules[1].File)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))

	out := buf.String()
	require.Less(t, bytes.Index(buf.Bytes(), []byte("zeta.py")), bytes.Index(buf.Bytes(), []byte("alpha.py")),
		"modules must appear in registration order, got:\n%s", out)
}
