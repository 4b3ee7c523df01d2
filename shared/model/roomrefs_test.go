package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lalazar/shared/model"
)

func TestRoomRefs_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.RoomRefs
		wantErr bool
	}{
		{
			name:  "bare string",
			input: `"room-1"`,
			want:  model.RoomRefs{"room-1"},
		},
		{
			name:  "array of strings",
			input: `["room-1", "room-2"]`,
			want:  model.RoomRefs{"room-1", "room-2"},
		},
		{
			name:  "array with empty entries",
			input: `["room-1", "", "room-2"]`,
			want:  model.RoomRefs{"room-1", "room-2"},
		},
		{
			name:  "null",
			input: `null`,
			want:  nil,
		},
		{
			name:  "empty string",
			input: `""`,
			want:  nil,
		},
		{
			name:    "number",
			input:   `42`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var refs model.RoomRefs

			err := json.Unmarshal([]byte(tt.input), &refs)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, refs)
		})
	}
}

func TestRoomRefs_Scan(t *testing.T) {
	var refs model.RoomRefs

	require.NoError(t, refs.Scan([]byte(`["room-1"]`)))
	assert.Equal(t, model.RoomRefs{"room-1"}, refs)

	require.NoError(t, refs.Scan(nil))
	assert.Nil(t, refs)

	require.NoError(t, refs.Scan(`"room-2"`))
	assert.Equal(t, model.RoomRefs{"room-2"}, refs)
}
