package surveyflow

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const headeredSTG = `Survey exported 2024-01-12
A B M N I V
1 2 3 4 0.010 0.051
2 3 4 5 0.010 0.049
3 4 5 6 0.010 0.047
`

func openTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	fname := t.Name() + ".db"
	_ = os.Remove(fname)

	p, err := Open(fname, DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() {
		p.Close()
		_ = os.Remove(fname)
		_ = os.Remove(fname + "-shm")
		_ = os.Remove(fname + "-wal")
	})
	return p
}

func TestIngest_EndToEnd(t *testing.T) {
	p := openTestPipeline(t)

	res, err := p.Ingest([]byte(headeredSTG), "line1.stg")
	require.NoError(t, err)

	assert.Equal(t, FileID([]byte(headeredSTG)), res.FileID)
	assert.False(t, res.Reused)
	require.Len(t, res.Table.Readings, 3)
	assert.Equal(t, "stg", res.Meta.Source)
	assert.True(t, res.Meta.HasRhoa, "rhoa must be derived from dV and CURRENT")
	assert.True(t, res.Meta.HasErr)
	assert.Nil(t, res.IP)

	assert.Equal(t, 3, res.Summary.NReadings)
	assert.Equal(t, 6, res.Summary.NElectrodes)
	assert.Equal(t, 1, res.Summary.AMin)
	assert.Equal(t, 3, res.Summary.AMax)
}

func TestIngest_IdenticalBytesReused(t *testing.T) {
	p := openTestPipeline(t)

	first, err := p.Ingest([]byte(headeredSTG), "line1.stg")
	require.NoError(t, err)
	second, err := p.Ingest([]byte(headeredSTG), "copy-of-line1.stg")
	require.NoError(t, err)

	assert.Equal(t, first.FileID, second.FileID)
	assert.True(t, second.Reused)
	assert.Equal(t, first.Meta, second.Meta)
	require.Len(t, second.Table.Readings, 3)
	assert.Equal(t, first.Table.Readings[0], second.Table.Readings[0])
}

func TestIngest_AllStagesFailedRecordsEvents(t *testing.T) {
	p := openTestPipeline(t)

	raw := []byte("no survey data here\njust prose\n")
	_, err := p.Ingest(raw, "notes.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all import stages failed")

	events, err := p.History(FileID(raw))
	require.NoError(t, err)
	require.Len(t, events, 2, "coordinate and tabular stage failures recorded")
	for _, ev := range events {
		assert.False(t, ev.OK)
		assert.NotEmpty(t, ev.Detail)
	}
}

func TestIngest_RetryAfterFailure(t *testing.T) {
	p := openTestPipeline(t)

	raw := []byte("still not a survey\n")
	_, err := p.Ingest(raw, "junk.dat")
	require.Error(t, err)

	// The upload row exists without a table; a second attempt must re-run
	// the chain rather than report a reused result.
	_, err = p.Ingest(raw, "junk.dat")
	require.Error(t, err)
}

func TestIngest_HistoryMarksWinningStage(t *testing.T) {
	p := openTestPipeline(t)

	res, err := p.Ingest([]byte(headeredSTG), "line1.stg")
	require.NoError(t, err)

	events, err := p.History(res.FileID)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.True(t, last.OK)
	assert.Equal(t, res.Meta.Importer, last.Stage)
}

func TestLookup_Unknown(t *testing.T) {
	p := openTestPipeline(t)
	_, err := p.Lookup("stg-does-not-exist")
	assert.Error(t, err)
}

func TestImport_Standalone(t *testing.T) {
	res, err := Import(DefaultConfig(), []byte(headeredSTG), "line1.stg")
	require.NoError(t, err)
	require.Len(t, res.Table.Readings, 3)
	assert.True(t, res.Table.HasRhoa())
}
