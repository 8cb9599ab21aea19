package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		want    string
		wantErr bool
	}{
		{name: "simple", key: "user-1/1700000000000.jpg", want: "user-1/1700000000000.jpg"},
		{name: "leading slash", key: "/user-1/a.png", want: "user-1/a.png"},
		{name: "empty", key: "  ", wantErr: true},
		{name: "parent traversal", key: "../etc/passwd", wantErr: true},
		{name: "embedded traversal", key: "user/../../x", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := CleanKey(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "http://localhost:3000/uploads/note-images/u/1.jpg",
		JoinURL("http://localhost:3000/uploads/", "note-images", "/u/1.jpg"))
	assert.Equal(t, "https://cdn.example.com/x", JoinURL("https://cdn.example.com", "", "x"))
}
