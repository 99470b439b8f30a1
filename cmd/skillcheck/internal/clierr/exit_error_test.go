package clierr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestExitCodeOf(t *testing.T) {
	cause := errors.New("cases file not found")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "plain error", err: cause, want: ExitFindings},
		{name: "wrapped infra", err: Wrap(ExitInfra, "loading catalog", cause), want: ExitInfra},
		{name: "infra below pkg/errors wrap", err: errors.Wrap(Newf(ExitInfra, "no skills in %s", "agents"), "check"), want: ExitInfra},
		{name: "findings", err: Newf(ExitFindings, "%d error(s)", 3), want: ExitFindings},
		{name: "zero is never a failure code", err: Newf(ExitOK, "oops"), want: ExitFindings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeOf(tt.err))
		})
	}
}

func TestExitError_Message(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ExitInfra, "scanning agents", cause)

	assert.Equal(t, "scanning agents: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "plain", Wrap(ExitInfra, "plain", nil).Error())
}
