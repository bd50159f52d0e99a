package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/basket-insights/internal/export"
	"github.com/Veraticus/basket-insights/internal/model"
	"github.com/Veraticus/basket-insights/internal/predict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memOpener(content string) Opener {
	return func(string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	}
}

func makeResult(n int) *model.PredictionResult {
	assocs := make([]model.Association, n)
	for i := range assocs {
		assocs[i] = model.Association{
			CustomerID: model.CustomerID(fmt.Sprintf("%d", 100+i)),
			Products:   []string{"Pasta", "Sauce"},
			Confidence: 0.5,
		}
	}
	return &model.PredictionResult{Associations: assocs, Score: 0.9}
}

func TestNew(t *testing.T) {
	c := New()
	assert.Equal(t, model.UploadIdle, c.State())
	assert.False(t, c.CanSubmit())
	assert.False(t, c.HasResult())
	assert.Empty(t, c.Error())
	_, ok := c.File()
	assert.False(t, ok)
}

func TestSelect(t *testing.T) {
	c := New()
	require.NoError(t, c.Select("", "/tmp/data/test.csv"))

	f, ok := c.File()
	require.True(t, ok)
	assert.Equal(t, "test.csv", f.Name)
	assert.Equal(t, model.UploadSelected, c.State())
	assert.True(t, c.CanSubmit())
}

func TestBeginSubmit_RejectsWrongFile(t *testing.T) {
	names := []string{"train.csv", "TEST.csv", "test.csv.bak", "my test.csv", ""}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			fake := predict.NewFake(nil)
			c := New()
			require.NoError(t, c.Select(name, "/somewhere/"+name))

			err := c.Submit(context.Background(), fake, memOpener("a,b"))
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Equal(t, UploadPrompt, c.Error())
			assert.Equal(t, model.UploadFailed, c.State())
			assert.Zero(t, fake.Calls())
		})
	}
}

func TestBeginSubmit_NoFile(t *testing.T) {
	c := New()
	_, err := c.BeginSubmit()
	require.Error(t, err)
	assert.Equal(t, "Please upload test.csv", c.Error())
	assert.Equal(t, model.UploadFailed, c.State())
}

func TestBeginSubmit_NotReentrant(t *testing.T) {
	c := New()
	require.NoError(t, c.Select("test.csv", "test.csv"))

	_, err := c.BeginSubmit()
	require.NoError(t, err)
	assert.True(t, c.Busy())
	assert.False(t, c.CanSubmit())

	_, err = c.BeginSubmit()
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, c.Select("other.csv", "other.csv"), ErrBusy)
}

func TestSubmit_Success(t *testing.T) {
	fake := predict.NewFake(makeResult(3))
	c := New()
	require.NoError(t, c.Select("test.csv", "test.csv"))

	require.NoError(t, c.Submit(context.Background(), fake, memOpener("customer_id\n1\n")))

	assert.Equal(t, model.UploadSucceeded, c.State())
	assert.Equal(t, 1, fake.Calls())
	assert.Equal(t, "customer_id\n1\n", string(fake.LastUpload()))
	assert.Len(t, c.Result().Associations, 3)
	assert.InDelta(t, 0.9, c.Score(), 1e-9)
	assert.Empty(t, c.Error())
}

func TestSettle_AppliesDefaults(t *testing.T) {
	c := New()
	require.NoError(t, c.Select("test.csv", "test.csv"))
	sub, err := c.BeginSubmit()
	require.NoError(t, err)

	assert.True(t, c.Settle(sub, nil, nil))
	require.NotNil(t, c.Result())
	assert.NotNil(t, c.Result().Associations)
	assert.InDelta(t, model.DefaultScore, c.Score(), 1e-9)
}

func TestSubmit_ServerErrorKeepsPreviousResult(t *testing.T) {
	fake := predict.NewFake(makeResult(2))
	c := New()
	require.NoError(t, c.Select("test.csv", "test.csv"))
	require.NoError(t, c.Submit(context.Background(), fake, memOpener("x")))

	fake.Err = &predict.ServerError{StatusCode: 500, Body: "server exploded"}
	err := c.Submit(context.Background(), fake, memOpener("x"))
	require.Error(t, err)

	assert.Equal(t, model.UploadFailed, c.State())
	assert.Equal(t, "HTTP error! status: 500 - server exploded", c.Error())
	assert.Len(t, c.Result().Associations, 2)
	assert.True(t, c.CanSubmit())
}

func TestSubmit_TransportErrorMessage(t *testing.T) {
	fake := predict.NewFake(nil)
	fake.Err = &predict.TransportError{Err: errors.New("connection refused")}

	c := New()
	require.NoError(t, c.Select("test.csv", "test.csv"))
	require.Error(t, c.Submit(context.Background(), fake, memOpener("x")))
	assert.Equal(t, "connection refused", c.Error())
}

func TestSubmit_OpenFailure(t *testing.T) {
	fake := predict.NewFake(nil)
	c := New()
	require.NoError(t, c.Select("test.csv", filepath.Join(t.TempDir(), "missing", "test.csv")))

	err := c.Submit(context.Background(), fake, OpenFile)
	require.Error(t, err)
	assert.Equal(t, model.UploadFailed, c.State())
	assert.Contains(t, c.Error(), "failed to open test.csv")
	assert.Zero(t, fake.Calls())
}

func TestSubmit_ReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")
	require.NoError(t, os.WriteFile(path, []byte("customer_id\n7\n"), 0o600))

	fake := predict.NewFake(makeResult(1))
	c := New()
	require.NoError(t, c.Select("", path))
	require.NoError(t, c.Submit(context.Background(), fake, nil))
	assert.Equal(t, "customer_id\n7\n", string(fake.LastUpload()))
}

func TestSelect_AfterFailureClearsError(t *testing.T) {
	c := New()
	require.NoError(t, c.Select("wrong.csv", "wrong.csv"))
	_, err := c.BeginSubmit()
	require.Error(t, err)
	require.NotEmpty(t, c.Error())

	require.NoError(t, c.Select("test.csv", "test.csv"))
	assert.Empty(t, c.Error())
	assert.Equal(t, model.UploadSelected, c.State())
}

func TestSettle_StaleOutcomeIgnored(t *testing.T) {
	c := New()
	require.NoError(t, c.Select("test.csv", "test.csv"))
	first, err := c.BeginSubmit()
	require.NoError(t, err)
	require.True(t, c.Settle(first, makeResult(1), nil))

	// A duplicate delivery of the same outcome is dropped.
	assert.False(t, c.Settle(first, makeResult(5), nil))
	assert.Len(t, c.Result().Associations, 1)
}

func TestClose_IgnoresLateResponse(t *testing.T) {
	c := New()
	require.NoError(t, c.Select("test.csv", "test.csv"))
	sub, err := c.BeginSubmit()
	require.NoError(t, err)

	c.Close()
	assert.False(t, c.Settle(sub, makeResult(4), nil))
	assert.Nil(t, c.Result())
	assert.ErrorIs(t, c.Select("test.csv", "test.csv"), ErrClosed)
}

func TestFiltersPersistAcrossSubmissions(t *testing.T) {
	fake := predict.NewFake(makeResult(20))
	c := New()
	c.SetCustomerFilter("11")
	c.SetMinConfidence(0.4)

	require.NoError(t, c.Select("test.csv", "test.csv"))
	require.NoError(t, c.Submit(context.Background(), fake, memOpener("x")))
	require.NoError(t, c.Submit(context.Background(), fake, memOpener("x")))

	assert.Equal(t, model.FilterCriteria{CustomerIDSubstring: "11", MinConfidence: 0.4}, c.Filter())
	filtered := c.Filtered()
	require.Len(t, filtered, 10)
	assert.Equal(t, model.CustomerID("110"), filtered[0].CustomerID)
}

func TestScenario_SingleAssociation(t *testing.T) {
	fake := predict.NewFake(&model.PredictionResult{
		Associations: []model.Association{
			{CustomerID: "1", Products: []string{"milk", "bread"}, Confidence: 0.8, Description: "x"},
		},
		Score: 0.9,
	})
	c := New()
	require.NoError(t, c.Select("test.csv", "test.csv"))
	require.NoError(t, c.Submit(context.Background(), fake, memOpener("x")))

	c.SetFilter(model.FilterCriteria{CustomerIDSubstring: "1", MinConfidence: 0.5})
	assert.Len(t, c.Filtered(), 1)

	c.SetFilter(model.FilterCriteria{CustomerIDSubstring: "1", MinConfidence: 0.9})
	assert.Empty(t, c.Filtered())
}

func TestViews_ListTruncatesChartDoesNot(t *testing.T) {
	c := New()
	require.NoError(t, c.Select("test.csv", "test.csv"))
	require.NoError(t, c.Submit(context.Background(), predict.NewFake(makeResult(15)), memOpener("x")))

	assert.Len(t, c.ListView(), 10)
	assert.Len(t, c.ChartView().Bars, 15)
}

func TestStats_FollowsFilter(t *testing.T) {
	c := New()
	require.NoError(t, c.Select("test.csv", "test.csv"))
	require.NoError(t, c.Submit(context.Background(), predict.NewFake(makeResult(15)), memOpener("x")))
	c.SetCustomerFilter("10")

	stats := c.Stats()
	assert.Equal(t, 15, stats.Total)
	assert.Equal(t, 11, stats.Filtered)
	require.Len(t, stats.TopBundles, 1)
	assert.Equal(t, 11, stats.TopBundles[0].Count)
}

func TestCanExport(t *testing.T) {
	tests := []struct {
		count int
		want  bool
	}{
		{count: 0, want: false},
		{count: 10, want: false},
		{count: 11, want: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d associations", tt.count), func(t *testing.T) {
			c := New()
			require.NoError(t, c.Select("test.csv", "test.csv"))
			require.NoError(t, c.Submit(context.Background(), predict.NewFake(makeResult(tt.count)), memOpener("x")))
			assert.Equal(t, tt.want, c.CanExport())
		})
	}
}

func TestExport_IgnoresFilter(t *testing.T) {
	c := New()
	require.NoError(t, c.Select("test.csv", "test.csv"))
	require.NoError(t, c.Submit(context.Background(), predict.NewFake(makeResult(12)), memOpener("x")))
	c.SetFilter(model.FilterCriteria{CustomerIDSubstring: "nomatch", MinConfidence: 0.99})
	require.Empty(t, c.Filtered())

	path, err := c.Export(t.TempDir(), export.FormatCSV)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	assert.Equal(t, "customer_id,products,confidence", lines[0])
	assert.Len(t, lines[1:], 12)
}

func TestExport_Unavailable(t *testing.T) {
	c := New()
	task, err := c.ExportTask(t.TempDir(), export.FormatCSV)
	assert.ErrorIs(t, err, ErrExportUnavailable)
	assert.Nil(t, task)

	_, err = c.Export(t.TempDir(), export.FormatCSV)
	assert.ErrorIs(t, err, ErrExportUnavailable)
}

func TestExport_WritesFile(t *testing.T) {
	c := New()
	require.NoError(t, c.Select("test.csv", "test.csv"))
	require.NoError(t, c.Submit(context.Background(), predict.NewFake(makeResult(11)), memOpener("x")))

	dir := t.TempDir()
	path, err := c.Export(dir, export.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "associations.csv"), path)
}

func TestExportTask_CapturesResultAtCallTime(t *testing.T) {
	c := New()
	require.NoError(t, c.Select("test.csv", "test.csv"))
	require.NoError(t, c.Submit(context.Background(), predict.NewFake(makeResult(11)), memOpener("x")))

	task, err := c.ExportTask(t.TempDir(), export.FormatCSV)
	require.NoError(t, err)

	require.NoError(t, c.Submit(context.Background(), predict.NewFake(makeResult(20)), memOpener("x")))

	path, err := task()
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(string(data), "\n")[1:], 11)
}

func TestToggleTheme(t *testing.T) {
	c := New()
	assert.False(t, c.Dark())
	c.ToggleTheme()
	assert.True(t, c.Dark())
	c.SetDark(false)
	assert.False(t, c.Dark())
}
