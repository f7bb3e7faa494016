package services

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/songbook-dev/songbook/internal/models"
)

// VideoInput is one entry of the submitted videos list. ID is empty for
// entries the client wants created.
type VideoInput struct {
	ID        string
	URL       string
	VideoType string
}

// decodeVideos validates the raw "videos" value. An absent or null value is
// an empty list.
func decodeVideos(raw json.RawMessage) ([]VideoInput, error) {
	trimmed := bytes.TrimSpace(raw)

	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] != '[' {
		return nil, newValidationError(MsgVideosNotArray)
	}

	var entries []json.RawMessage

	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, newValidationError(MsgVideosNotArray)
	}

	if len(entries) > models.MaxVideosPerSong {
		return nil, newValidationError(MsgTooManyVideos)
	}

	videos := make([]VideoInput, 0, len(entries))

	for _, entry := range entries {
		var fields map[string]interface{}

		if err := json.Unmarshal(entry, &fields); err != nil || fields == nil {
			return nil, newValidationError(MsgVideoIncomplete)
		}

		url, _ := fields["url"].(string)
		videoType, _ := fields["video_type"].(string)

		if strings.TrimSpace(url) == "" || strings.TrimSpace(videoType) == "" {
			return nil, newValidationError(MsgVideoIncomplete)
		}

		videos = append(videos, VideoInput{
			ID:        videoID(fields["id"]),
			URL:       strings.TrimSpace(url),
			VideoType: strings.TrimSpace(videoType),
		})
	}

	return videos, nil
}

func videoID(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// videoPlan is the set of writes that turns a song's stored videos into the
// submitted list.
type videoPlan struct {
	update []models.Video
	create []models.Video
	delete []string
	kept   int
}

func (p videoPlan) finalCount() int {
	return p.kept + len(p.create)
}

// planVideos diffs incoming against existing. Entries whose id matches an
// existing video keep it (updating it if fields changed); duplicate ids
// collapse to the last entry. Entries without a known id become creates.
// Existing videos nobody referenced are deleted.
func planVideos(songID string, existing []models.Video, incoming []VideoInput) videoPlan {
	byID := make(map[string]models.Video, len(existing))
	for _, video := range existing {
		byID[video.ID] = video
	}

	// last entry wins for a repeated id
	target := make(map[string]VideoInput)
	order := make([]string, 0, len(incoming))

	var plan videoPlan

	for _, in := range incoming {
		if _, ok := byID[in.ID]; in.ID != "" && ok {
			if _, seen := target[in.ID]; !seen {
				order = append(order, in.ID)
			}
			target[in.ID] = in
			continue
		}

		plan.create = append(plan.create, models.Video{
			VideoType: in.VideoType,
			URL:       in.URL,
			SongID:    songID,
		})
	}

	for _, id := range order {
		video := byID[id]
		in := target[id]
		plan.kept++

		if video.URL == in.URL && video.VideoType == in.VideoType {
			continue
		}

		video.URL = in.URL
		video.VideoType = in.VideoType
		plan.update = append(plan.update, video)
	}

	for _, video := range existing {
		if _, ok := target[video.ID]; !ok {
			plan.delete = append(plan.delete, video.ID)
		}
	}

	return plan
}
