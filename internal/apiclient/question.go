package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/spec-kit/quiz-client/internal/domain"
)

// AllQuestions lists every question in the bank.
func (c *Client) AllQuestions(ctx context.Context) ([]domain.Question, error) {
	raw, err := c.Do(ctx, "/admin/question/allQuestions", RequestOptions{})
	if err != nil {
		return nil, err
	}
	var questions []domain.Question
	c.decodeList(raw, &questions, "questions")
	return questions, nil
}

// Categories lists the distinct question categories.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	raw, err := c.Do(ctx, "/admin/question/categories", RequestOptions{})
	if err != nil {
		return nil, err
	}
	var categories []string
	c.decodeList(raw, &categories, "categories")
	return categories, nil
}

// AddQuestion creates a question.
func (c *Client) AddQuestion(ctx context.Context, question domain.Question) error {
	_, err := c.Do(ctx, "/admin/question/addQuestions", RequestOptions{
		Method: http.MethodPost,
		Body:   question,
	})
	return err
}

// UpdateQuestion replaces the question with the given ID.
func (c *Client) UpdateQuestion(ctx context.Context, question domain.Question) error {
	_, err := c.Do(ctx, "/admin/question/update/"+strconv.Itoa(question.ID), RequestOptions{
		Method: http.MethodPut,
		Body:   question,
	})
	return err
}

// DeleteQuestion removes a question.
func (c *Client) DeleteQuestion(ctx context.Context, questionID int) error {
	_, err := c.Do(ctx, "/admin/question/delete/"+strconv.Itoa(questionID), RequestOptions{
		Method: http.MethodDelete,
	})
	return err
}
