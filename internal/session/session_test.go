// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/michael-tui/internal/api"
	"github.com/jeranaias/michael-tui/internal/model"
)

// fakeSender records requests and replays scripted results.
type fakeSender struct {
	mu       sync.Mutex
	requests []recorded
	results  []result
}

type recorded struct {
	text  string
	token *string
}

type result struct {
	resp *api.ChatResponse
	err  error
}

func (f *fakeSender) SendMessage(_ context.Context, text string, prev *string) (*api.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recorded{text: text, token: prev})
	if len(f.results) == 0 {
		return nil, errors.New("no scripted result")
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r.resp, r.err
}

func reply(id, text string) result {
	return result{resp: &api.ChatResponse{
		ResponseID: id,
		MainText:   text,
		Lenses:     model.Lenses{Physics: "light scatters"},
		Confidence: model.Confidence{Confident: []string{"scattering"}, Uncertain: []string{}},
		Sources:    []model.Source{{Title: "Rayleigh"}},
	}}
}

func fixedIDs() model.IDGenerator {
	at := time.UnixMilli(1000)
	return model.NewSequenceGenerator(func() time.Time { return at })
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestSend_AppendsUserThenAssistant(t *testing.T) {
	sender := &fakeSender{results: []result{reply("resp_1", "Because of scattering.")}}
	s := New(sender, WithIDGenerator(fixedIDs()))

	before := s.Len()
	msg, err := s.Send(context.Background(), "Why is the sky blue?")
	require.NoError(t, err)

	msgs := s.Messages()
	require.Len(t, msgs, before+2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "Why is the sky blue?", msgs[0].Text)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.Equal(t, msg, msgs[1])
	assert.Equal(t, "Because of scattering.", msg.Text)
	assert.True(t, msg.HasLenses())
	assert.False(t, s.IsLoading())
	assert.NotEqual(t, msgs[0].ID, msgs[1].ID)
}

func TestSend_ThreadsContinuationToken(t *testing.T) {
	sender := &fakeSender{results: []result{
		reply("resp_1", "one"),
		reply("resp_2", "two"),
		reply("resp_3", "three"),
	}}
	s := New(sender)

	for _, q := range []string{"a", "b", "c"} {
		_, err := s.Send(context.Background(), q)
		require.NoError(t, err)
	}

	require.Len(t, sender.requests, 3)
	assert.Nil(t, sender.requests[0].token)
	require.NotNil(t, sender.requests[1].token)
	assert.Equal(t, "resp_1", *sender.requests[1].token)
	assert.Equal(t, "resp_2", *sender.requests[2].token)
	assert.Equal(t, "resp_3", *s.Token())
}

func TestSend_FailurePreservesToken(t *testing.T) {
	sender := &fakeSender{results: []result{
		reply("resp_1", "one"),
		{err: &api.NetworkError{Err: errors.New("dial tcp: connection refused")}},
	}}
	s := New(sender)

	_, err := s.Send(context.Background(), "first")
	require.NoError(t, err)
	countBefore := s.Len()

	msg, err := s.Send(context.Background(), "second")
	require.Error(t, err)

	assert.Equal(t, countBefore+2, s.Len())
	assert.True(t, strings.HasPrefix(msg.Text, "Connection error: "))
	assert.True(t, msg.Failed)
	assert.Equal(t, model.RoleAssistant, msg.Role)
	assert.False(t, s.IsLoading())
	require.NotNil(t, s.Token())
	assert.Equal(t, "resp_1", *s.Token())
}

func TestSend_ServerErrorText(t *testing.T) {
	sender := &fakeSender{results: []result{
		{err: &api.ServerError{StatusCode: 502, Body: "bad gateway"}},
	}}
	s := New(sender)

	msg, _ := s.Send(context.Background(), "hi")

	assert.Equal(t, "Connection error: Server error 502: bad gateway", msg.Text)
	assert.Nil(t, s.Token())
}

func TestSend_NilResponseIsFailure(t *testing.T) {
	sender := &fakeSender{results: []result{{}}}
	s := New(sender)

	msg, err := s.Send(context.Background(), "hi")

	require.Error(t, err)
	assert.True(t, msg.Failed)
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, FallbackErrorText, ErrorText(nil))
	assert.Equal(t, FallbackErrorText, ErrorText(errors.New("  ")))
	assert.Equal(t, "Connection error: boom", ErrorText(errors.New("boom")))
}

// =============================================================================
// TWO-PHASE TESTS
// =============================================================================

func TestBegin_IsOptimisticAndLoading(t *testing.T) {
	s := New(&fakeSender{})

	p := s.Begin("pending question")

	assert.True(t, s.IsLoading())
	require.Equal(t, 1, s.Len())
	assert.Equal(t, p.UserMessage, s.Messages()[0])
	assert.Nil(t, p.PreviousResponseID)
}

func TestBegin_NotBlockedWhileLoading(t *testing.T) {
	sender := &fakeSender{results: []result{reply("r1", "one"), reply("r2", "two")}}
	s := New(sender)

	p1 := s.Begin("first")
	p2 := s.Begin("second")
	assert.Equal(t, 2, s.Len())

	s.Settle(p1.Run(context.Background(), sender))
	assert.False(t, s.IsLoading(), "any settle clears the flag")

	s.Settle(p2.Run(context.Background(), sender))
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, "r2", *s.Token())
}

func TestRun_DoesNotMutateSession(t *testing.T) {
	sender := &fakeSender{results: []result{reply("r1", "one")}}
	s := New(sender)

	p := s.Begin("q")
	o := p.Run(context.Background(), sender)

	assert.Equal(t, 1, s.Len())
	assert.True(t, s.IsLoading())
	assert.Nil(t, s.Token())
	assert.NoError(t, o.Err)
	assert.Same(t, p, o.Pending)
}

// =============================================================================
// RESET TESTS
// =============================================================================

func TestReset(t *testing.T) {
	sender := &fakeSender{results: []result{reply("r1", "one")}}
	s := New(sender)
	_, _ = s.Send(context.Background(), "q")
	oldID := s.ConversationID()

	s.Reset()

	assert.Empty(t, s.Messages())
	assert.Nil(t, s.Token())
	assert.NotEqual(t, oldID, s.ConversationID())
	assert.Len(t, sender.requests, 1, "reset must not call the backend")
}

func TestReset_OnEmptySession(t *testing.T) {
	s := New(&fakeSender{})
	s.Reset()
	assert.Empty(t, s.Messages())
	assert.Nil(t, s.Token())
}

func TestSetSender(t *testing.T) {
	first := &fakeSender{results: []result{reply("r1", "one")}}
	second := &fakeSender{results: []result{reply("r2", "two")}}
	s := New(first)

	s.SetSender(second)
	_, err := s.Send(context.Background(), "q")

	require.NoError(t, err)
	assert.Empty(t, first.requests)
	assert.Len(t, second.requests, 1)
}
