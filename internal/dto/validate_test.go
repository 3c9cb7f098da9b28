package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateVoteRequest(t *testing.T) {
	assert.NoError(t, Validate(&VoteRequest{VoteType: "upvote"}))
	assert.NoError(t, Validate(&VoteRequest{VoteType: "dispute", Comment: "seen it myself"}))
	assert.Error(t, Validate(&VoteRequest{VoteType: "maybe"}))
	assert.Error(t, Validate(&VoteRequest{}))
	assert.Error(t, Validate(&VoteRequest{
		VoteType: "upvote",
		Comment:  strings.Repeat("x", 501),
	}))
}

func TestValidateCreateCommentRequest(t *testing.T) {
	assert.NoError(t, Validate(&CreateCommentRequest{Content: "confirmed"}))
	assert.Error(t, Validate(&CreateCommentRequest{}))
	assert.Error(t, Validate(&CreateCommentRequest{Content: strings.Repeat("x", 1001)}))
	assert.Error(t, Validate(&CreateCommentRequest{Content: "ok", ParentID: "not-a-uuid"}))
}

func floatPtr(v float64) *float64 { return &v }

func TestValidateCreateReportRequest(t *testing.T) {
	typeID := "6ba7b810-9dad-41d1-80b4-00c04fd430c8"

	assert.NoError(t, Validate(&CreateReportRequest{
		Lat: floatPtr(47.5), Lon: floatPtr(19.0), TypeID: typeID,
	}))

	// A coordinate of exactly 0 is a valid position on the equator or
	// prime meridian and must not be mistaken for a missing field.
	assert.NoError(t, Validate(&CreateReportRequest{
		Lat: floatPtr(0), Lon: floatPtr(0), TypeID: typeID,
	}))

	assert.Error(t, Validate(&CreateReportRequest{TypeID: typeID}))
	assert.Error(t, Validate(&CreateReportRequest{Lat: floatPtr(47.5), TypeID: typeID}))
	assert.Error(t, Validate(&CreateReportRequest{Lon: floatPtr(19.0), TypeID: typeID}))
	assert.Error(t, Validate(&CreateReportRequest{Lat: floatPtr(47.5), Lon: floatPtr(19.0)}))
}

func TestValidateRegisterRequest(t *testing.T) {
	assert.NoError(t, Validate(&RegisterRequest{
		Username: "mapwatcher", Email: "mw@example.com", Password: "hunter22",
	}))
	assert.Error(t, Validate(&RegisterRequest{
		Username: "ab", Email: "mw@example.com", Password: "hunter22",
	}))
	assert.Error(t, Validate(&RegisterRequest{
		Username: "mapwatcher", Email: "not-an-email", Password: "hunter22",
	}))
	assert.Error(t, Validate(&RegisterRequest{
		Username: "mapwatcher", Email: "mw@example.com", Password: "short",
	}))
}
