package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dreamscribe/internal/model"
	"dreamscribe/pkg/ai"
	"dreamscribe/pkg/ai/mocks"
)

func TestParseMoodResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    model.Mood
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `{"mood":"happy","intensity":0.8,"dominantColor":"#FFD700"}`,
			want: model.Mood{Mood: "happy", Intensity: 0.8, DominantColor: "#FFD700"},
		},
		{
			name: "code fenced",
			raw:  "```json\n{\"mood\":\"Sad\",\"intensity\":0.3,\"dominantColor\":\"#112233\"}\n```",
			want: model.Mood{Mood: "sad", Intensity: 0.3, DominantColor: "#112233"},
		},
		{
			name: "percent intensity as string",
			raw:  `Here you go: {"mood":"angry","intensity":"85"}`,
			want: model.Mood{Mood: "angry", Intensity: 0.85, DominantColor: "#FF4500"},
		},
		{
			name: "missing intensity uses default",
			raw:  `{"mood":"curious","dominantColor":"not-a-color"}`,
			want: model.Mood{Mood: "curious", Intensity: 0.5, DominantColor: "#32CD32"},
		},
		{name: "garbage", raw: "I feel fine", wantErr: true},
		{name: "broken json", raw: `{"mood": happy}`, wantErr: true},
		{name: "empty mood", raw: `{"mood":"","intensity":0.4}`, wantErr: true},
		{name: "bad intensity", raw: `{"mood":"sad","intensity":"very"}`, wantErr: true},
		{name: "NaN intensity", raw: `{"mood":"happy","intensity":"NaN"}`, wantErr: true},
		{name: "infinite intensity", raw: `{"mood":"happy","intensity":"Inf"}`, wantErr: true},
		{name: "negative infinite intensity", raw: `{"mood":"happy","intensity":"-Infinity"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMoodResponse(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Mood, got.Mood)
			assert.InDelta(t, tt.want.Intensity, got.Intensity, 1e-9)
			assert.Equal(t, tt.want.DominantColor, got.DominantColor)
		})
	}
}

func TestMoodAnalyzer_AnalyzeMood(t *testing.T) {
	t.Run("success uses low temperature and JSON mode", func(t *testing.T) {
		client := mocks.NewMockClient(t)
		client.On("GenerateText", mock.Anything, mock.MatchedBy(func(r ai.GenerationRequest) bool {
			return r.Operation == "mood_analysis" &&
				r.Params.JSONResponse &&
				*r.Params.Temperature == 0.2 &&
				*r.Params.MaxTokens == 150
		})).Return(`{"mood":"excited","intensity":0.9,"dominantColor":"#FF1493"}`, ai.UsageInfo{}, nil).Once()

		got := NewMoodAnalyzer(client, nopLogger()).AnalyzeMood(context.Background(), "We did it!")
		assert.Equal(t, model.Mood{Mood: "excited", Intensity: 0.9, DominantColor: "#FF1493"}, got)
	})

	t.Run("transport error falls back to neutral", func(t *testing.T) {
		client := mocks.NewMockClient(t)
		client.On("GenerateText", mock.Anything, mock.Anything).
			Return("", ai.UsageInfo{}, errors.New("boom")).Once()

		got := NewMoodAnalyzer(client, nopLogger()).AnalyzeMood(context.Background(), "text")
		assert.Equal(t, model.NeutralMood(), got)
	})

	t.Run("unparseable response falls back to neutral", func(t *testing.T) {
		client := mocks.NewMockClient(t)
		client.On("GenerateText", mock.Anything, mock.Anything).Return("hmm", ai.UsageInfo{}, nil).Once()

		got := NewMoodAnalyzer(client, nopLogger()).AnalyzeMood(context.Background(), "text")
		assert.Equal(t, model.NeutralMood(), got)
	})

	t.Run("non-finite intensity falls back to neutral", func(t *testing.T) {
		client := mocks.NewMockClient(t)
		client.On("GenerateText", mock.Anything, mock.Anything).
			Return(`{"mood":"happy","intensity":"NaN"}`, ai.UsageInfo{}, nil).Once()

		got := NewMoodAnalyzer(client, nopLogger()).AnalyzeMood(context.Background(), "text")
		assert.Equal(t, model.NeutralMood(), got)
	})

	t.Run("no credentials", func(t *testing.T) {
		got := NewMoodAnalyzer(ai.NewDisabledClient(), nopLogger()).AnalyzeMood(context.Background(), "text")
		assert.Equal(t, model.Mood{Mood: "neutral", Intensity: 0.5, DominantColor: "#808080"}, got)
	})

	t.Run("empty text skips the model", func(t *testing.T) {
		client := mocks.NewMockClient(t)
		got := NewMoodAnalyzer(client, nopLogger()).AnalyzeMood(context.Background(), "   ")
		assert.Equal(t, model.NeutralMood(), got)
		client.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
	})
}
