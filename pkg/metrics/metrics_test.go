package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordUpload(t *testing.T) {
	before := testutil.ToFloat64(FileUploads.WithLabelValues("resume", "success"))
	beforeBytes := testutil.ToFloat64(FileUploadBytes.WithLabelValues("resume"))

	RecordUpload("resume", "success", 2048)
	RecordUpload("resume", "invalid_file_type", 0)

	assert.Equal(t, before+1, testutil.ToFloat64(FileUploads.WithLabelValues("resume", "success")))
	assert.Equal(t, beforeBytes+2048, testutil.ToFloat64(FileUploadBytes.WithLabelValues("resume")))
}

func TestRecordLogin(t *testing.T) {
	before := testutil.ToFloat64(AuthAttempts.WithLabelValues("success"))
	RecordLogin("success")
	assert.Equal(t, before+1, testutil.ToFloat64(AuthAttempts.WithLabelValues("success")))
}
