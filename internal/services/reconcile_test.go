package services

import (
	"encoding/json"
	"testing"

	"github.com/songbook-dev/songbook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeVideos(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []VideoInput
		wantErr string
	}{
		{name: "absent", raw: ``},
		{name: "null", raw: `null`},
		{name: "empty", raw: `[]`, want: []VideoInput{}},
		{
			name: "valid",
			raw:  `[{"url":"https://youtu.be/1","video_type":"youtube"},{"id":"v2","url":" https://vimeo.com/2 ","video_type":"vimeo"}]`,
			want: []VideoInput{
				{URL: "https://youtu.be/1", VideoType: "youtube"},
				{ID: "v2", URL: "https://vimeo.com/2", VideoType: "vimeo"},
			},
		},
		{name: "numeric id", raw: `[{"id":7,"url":"u","video_type":"t"}]`, want: []VideoInput{{ID: "7", URL: "u", VideoType: "t"}}},
		{name: "object", raw: `{"url":"u","video_type":"t"}`, wantErr: MsgVideosNotArray},
		{name: "string", raw: `"nope"`, wantErr: MsgVideosNotArray},
		{name: "number", raw: `5`, wantErr: MsgVideosNotArray},
		{
			name:    "six entries",
			raw:     `[{"url":"u","video_type":"t"},{"url":"u","video_type":"t"},{"url":"u","video_type":"t"},{"url":"u","video_type":"t"},{"url":"u","video_type":"t"},{"url":"u","video_type":"t"}]`,
			wantErr: MsgTooManyVideos,
		},
		{name: "missing url", raw: `[{"video_type":"t"}]`, wantErr: MsgVideoIncomplete},
		{name: "missing type", raw: `[{"url":"u"}]`, wantErr: MsgVideoIncomplete},
		{name: "missing both", raw: `[{}]`, wantErr: MsgVideoIncomplete},
		{name: "blank url", raw: `[{"url":"  ","video_type":"t"}]`, wantErr: MsgVideoIncomplete},
		{name: "non-string url", raw: `[{"url":3,"video_type":"t"}]`, wantErr: MsgVideoIncomplete},
		{name: "non-object entry", raw: `["https://youtu.be/1"]`, wantErr: MsgVideoIncomplete},
		{name: "null entry", raw: `[null]`, wantErr: MsgVideoIncomplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeVideos(json.RawMessage(tt.raw))

			if tt.wantErr != "" {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantErr, verr.Message)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func existingVideos() []models.Video {
	return []models.Video{
		{BaseModel: models.BaseModel{ID: "a"}, VideoType: "youtube", URL: "https://youtu.be/a", SongID: "s1"},
		{BaseModel: models.BaseModel{ID: "b"}, VideoType: "youtube", URL: "https://youtu.be/b", SongID: "s1"},
		{BaseModel: models.BaseModel{ID: "c"}, VideoType: "vimeo", URL: "https://vimeo.com/c", SongID: "s1"},
	}
}

func TestPlanVideos_Mixed(t *testing.T) {
	plan := planVideos("s1", existingVideos(), []VideoInput{
		{ID: "a", URL: "https://youtu.be/a", VideoType: "youtube"},
		{ID: "c", URL: "https://vimeo.com/c2", VideoType: "vimeo"},
		{URL: "https://youtu.be/new", VideoType: "youtube"},
	})

	require.Len(t, plan.update, 1)
	assert.Equal(t, "c", plan.update[0].ID)
	assert.Equal(t, "https://vimeo.com/c2", plan.update[0].URL)

	require.Len(t, plan.create, 1)
	assert.Equal(t, "s1", plan.create[0].SongID)
	assert.Empty(t, plan.create[0].ID)

	assert.Equal(t, []string{"b"}, plan.delete)
	assert.Equal(t, 3, plan.finalCount())
}

func TestPlanVideos_EmptyListDeletesAll(t *testing.T) {
	plan := planVideos("s1", existingVideos(), nil)

	assert.Empty(t, plan.update)
	assert.Empty(t, plan.create)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, plan.delete)
	assert.Equal(t, 0, plan.finalCount())
}

func TestPlanVideos_UnchangedIsNoop(t *testing.T) {
	var incoming []VideoInput
	for _, v := range existingVideos() {
		incoming = append(incoming, VideoInput{ID: v.ID, URL: v.URL, VideoType: v.VideoType})
	}

	plan := planVideos("s1", existingVideos(), incoming)

	assert.Empty(t, plan.update)
	assert.Empty(t, plan.create)
	assert.Empty(t, plan.delete)
	assert.Equal(t, 3, plan.finalCount())
}

func TestPlanVideos_UnknownIDIsCreated(t *testing.T) {
	plan := planVideos("s1", existingVideos(), []VideoInput{
		{ID: "from-another-song", URL: "u", VideoType: "t"},
	})

	require.Len(t, plan.create, 1)
	assert.Empty(t, plan.create[0].ID)
	assert.Len(t, plan.delete, 3)
}

func TestPlanVideos_DuplicateIDLastWins(t *testing.T) {
	plan := planVideos("s1", existingVideos(), []VideoInput{
		{ID: "a", URL: "first", VideoType: "youtube"},
		{ID: "a", URL: "second", VideoType: "youtube"},
	})

	require.Len(t, plan.update, 1)
	assert.Equal(t, "second", plan.update[0].URL)
	assert.Equal(t, 1, plan.finalCount())
	assert.ElementsMatch(t, []string{"b", "c"}, plan.delete)
}

func TestPlanVideos_OrderIndependent(t *testing.T) {
	forward := []VideoInput{
		{ID: "a", URL: "https://youtu.be/a2", VideoType: "youtube"},
		{URL: "https://youtu.be/new", VideoType: "youtube"},
		{ID: "c", URL: "https://vimeo.com/c", VideoType: "vimeo"},
	}
	reversed := []VideoInput{forward[2], forward[1], forward[0]}

	p1 := planVideos("s1", existingVideos(), forward)
	p2 := planVideos("s1", existingVideos(), reversed)

	assert.ElementsMatch(t, p1.update, p2.update)
	assert.ElementsMatch(t, p1.create, p2.create)
	assert.ElementsMatch(t, p1.delete, p2.delete)
	assert.Equal(t, p1.finalCount(), p2.finalCount())
}
