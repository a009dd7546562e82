package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthdata/growthviz/internal/common"
)

func writeObservationFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "observations.csv")
	content := "subjid,sex,param,measurement,clean_value,agedays\n" +
		"a,0,HEIGHTCM,175,Include,10957\n" +
		"a,0,WEIGHTKG,70,Include,10957\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunCharts_PercentilesNeedReference(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("mode", "adults")

	err := runCharts("trajectory", writeObservationFile(t), chartOptions{
		outPath:     filepath.Join(t.TempDir(), "chart.html"),
		subjID:      "a",
		param:       "HEIGHTCM",
		percentiles: true,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	var ue *common.UserError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.UserMessage, "--percentiles")
}

func TestRunCharts_UnknownKind(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("mode", "adults")

	err := runCharts("pies", writeObservationFile(t), chartOptions{})
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}
