package blossom

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewWriterLogger("blossom", false, &out, &errOut)

	log.Debugf("hidden %d", 1)
	log.Infof("hello %s", "world")
	log.Warnf("careful")
	log.Errorf("broken: %v", "camera")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[blossom] INFO: hello world")
	assert.Contains(t, errOut.String(), "[blossom] WARN: careful")
	assert.Contains(t, errOut.String(), "[blossom] ERROR: broken: camera")

	log.SetDebug(true)
	assert.True(t, log.DebugEnabled())
	log.Debugf("visible %d", 2)
	assert.Contains(t, out.String(), "[blossom] DEBUG: visible 2")
}

func TestDefaultLogger_NoPrefix(t *testing.T) {
	var out bytes.Buffer
	log := NewWriterLogger("", false, &out, &out)
	log.Infof("plain")
	assert.Contains(t, out.String(), "INFO: plain")
	assert.NotContains(t, out.String(), "[")
}

func TestLoggingModule(t *testing.T) {
	var out bytes.Buffer
	custom := NewWriterLogger("x", false, &out, &out)

	app := NewAppBuilder().UseModule(LoggingModule{Logger: custom}).Build()
	assert.Same(t, custom, app.Logger())

	bare := NewAppBuilder().Build()
	assert.NotNil(t, bare.Logger())
	bare.Logger().Errorf("dropped")
}
