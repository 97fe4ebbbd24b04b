package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeRequest_ValidRequestMerges(t *testing.T) {
	req := MergeRequest{
		Streams:     [][]Event{{{StreamID: "a", Start: at(9), End: at(10)}}},
		WindowStart: at(8),
		WindowEnd:   at(12),
		Privacy:     PrivacyOpaque,
	}
	res, err := req.Merge()
	require.Nil(t, err)
	require.Len(t, res.Busy, 1)
}

func TestMergeRequest_InvalidPrivacyRejected(t *testing.T) {
	req := MergeRequest{
		Streams:     [][]Event{{{Start: at(9), End: at(10)}}},
		WindowStart: at(8),
		WindowEnd:   at(12),
		Privacy:     "invisible",
	}
	_, err := req.Merge()
	require.NotNil(t, err)
	assert.Equal(t, "InvalidFormat", err.Kind().String())
}

func TestMergeRequest_WindowOrderRejected(t *testing.T) {
	req := MergeRequest{
		Streams:     [][]Event{{{Start: at(9), End: at(10)}}},
		WindowStart: at(12),
		WindowEnd:   at(8),
		Privacy:     PrivacyOpaque,
	}
	_, err := req.Merge()
	require.NotNil(t, err)
}
