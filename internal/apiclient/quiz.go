package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/spec-kit/quiz-client/internal/domain"
)

// Quizzes lists all quizzes with their questions.
func (c *Client) Quizzes(ctx context.Context) ([]domain.Quiz, error) {
	raw, err := c.Do(ctx, "/user/quiz/all", RequestOptions{})
	if err != nil {
		return nil, err
	}
	var quizzes []domain.Quiz
	c.decodeList(raw, &quizzes, "quizzes")
	return quizzes, nil
}

// QuizQuestions fetches the questions of one quiz.
func (c *Client) QuizQuestions(ctx context.Context, quizID int) ([]domain.Question, error) {
	raw, err := c.Do(ctx, "/user/quiz/get/"+strconv.Itoa(quizID), RequestOptions{})
	if err != nil {
		return nil, err
	}
	var questions []domain.Question
	c.decodeList(raw, &questions, "quiz questions")
	return questions, nil
}

// SubmitQuiz posts the answers and returns the score. The server responds
// with either a bare number or an object carrying a score field.
func (c *Client) SubmitQuiz(ctx context.Context, quizID int, answers []domain.Answer) (int, error) {
	raw, err := c.Do(ctx, "/user/quiz/submit/"+strconv.Itoa(quizID), RequestOptions{
		Method: http.MethodPost,
		Body:   answers,
	})
	if err != nil {
		return 0, err
	}
	return parseScore(raw), nil
}

// DeleteQuiz removes a quiz.
func (c *Client) DeleteQuiz(ctx context.Context, quizID int) error {
	_, err := c.Do(ctx, "/admin/quiz/delete/"+strconv.Itoa(quizID), RequestOptions{
		Method: http.MethodDelete,
	})
	return err
}

// CreateQuiz asks the server to assemble a quiz from the given category.
func (c *Client) CreateQuiz(ctx context.Context, category string, numQuestions int, title string) error {
	params := url.Values{}
	params.Set("category", category)
	params.Set("numQ", strconv.Itoa(numQuestions))
	params.Set("title", title)
	_, err := c.Do(ctx, "/admin/quiz/create?"+params.Encode(), RequestOptions{
		Method: http.MethodPost,
	})
	return err
}

func parseScore(raw json.RawMessage) int {
	if raw == nil {
		return 0
	}
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return int(number)
	}
	var wrapped struct {
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return int(wrapped.Score)
	}
	return 0
}

// decodeList tolerates payloads that are missing or not the expected list, the
// same way the views treat them as empty.
func (c *Client) decodeList(raw json.RawMessage, target interface{}, what string) {
	if raw == nil {
		return
	}
	if err := json.Unmarshal(raw, target); err != nil {
		c.logger.Warn(fmt.Sprintf("unexpected %s payload", what), zap.Error(err))
	}
}
