package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spec-kit/quiz-client/internal/domain"
)

func (t *Terminal) adminDashboardPage(ctx context.Context) {
	fmt.Fprintln(t.out, "-- Admin Dashboard --")
	fmt.Fprintln(t.out, "1) Manage Quizzes")
	fmt.Fprintln(t.out, "2) Manage Questions")
	fmt.Fprintln(t.out, "3) Create User")

	command, ok := t.prompt("Choice, or 'logout'/'quit'")
	if !ok || t.handleGlobal(command) {
		return
	}
	switch command {
	case "1":
		t.app.NavigateTo(domain.PageManageQuizzes)
	case "2":
		t.app.NavigateTo(domain.PageManageQuestions)
	case "3":
		t.app.NavigateTo(domain.PageCreateAdmin)
	}
}

func (t *Terminal) manageQuizzesPage(ctx context.Context) {
	quizzes := t.app.FetchQuizzes(ctx)

	fmt.Fprintf(t.out, "-- Manage Quizzes (%d) --\n", len(quizzes))
	if len(quizzes) == 0 {
		fmt.Fprintln(t.out, "No quizzes created yet.")
	}
	for i, quiz := range quizzes {
		fmt.Fprintf(t.out, "%d) %s (%d questions)\n", i+1, quiz.Title, len(quiz.Questions))
	}

	command, ok := t.prompt("'c' create, 'd <n>' delete, 'b' back")
	if !ok || t.handleGlobal(command) {
		return
	}
	switch {
	case command == "c":
		t.app.NavigateTo(domain.PageCreateQuiz)
	case command == "b":
		t.app.NavigateTo(domain.PageAdminDashboard)
	case strings.HasPrefix(command, "d "):
		index, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(command, "d ")))
		if err != nil || index < 1 || index > len(quizzes) {
			return
		}
		if t.confirm("Are you sure you want to delete this quiz?") {
			t.app.DeleteQuiz(ctx, quizzes[index-1].ID)
		}
	}
}

func (t *Terminal) createQuizPage(ctx context.Context) {
	fmt.Fprintln(t.out, "-- Create New Quiz --")

	categories := t.app.FetchCategories(ctx)
	if len(categories) == 0 {
		fmt.Fprintln(t.out, "No categories available; add questions first.")
		t.app.NavigateTo(domain.PageManageQuizzes)
		return
	}

	title, ok := t.prompt("Quiz title, or 'cancel'")
	if !ok {
		return
	}
	if strings.EqualFold(title, "cancel") || title == "" {
		t.app.NavigateTo(domain.PageManageQuizzes)
		return
	}

	for i, category := range categories {
		fmt.Fprintf(t.out, "%d) %s\n", i+1, category)
	}
	choice, ok := t.prompt("Category number")
	if !ok {
		return
	}
	index, err := strconv.Atoi(choice)
	if err != nil || index < 1 || index > len(categories) {
		return
	}

	count, ok := t.prompt("Number of questions")
	if !ok {
		return
	}
	numQuestions, err := strconv.Atoi(count)
	if err != nil || numQuestions < 1 {
		return
	}

	t.app.CreateQuiz(ctx, categories[index-1], numQuestions, title)
}

func (t *Terminal) manageQuestionsPage(ctx context.Context) {
	questions, categories := t.app.FetchQuestionData(ctx)
	filter := "All"

	for {
		filtered := questions
		if filter != "All" {
			filtered = nil
			for _, q := range questions {
				if q.Category == filter {
					filtered = append(filtered, q)
				}
			}
		}

		fmt.Fprintf(t.out, "-- Manage Questions (%d) [filter: %s] --\n", len(filtered), filter)
		if len(filtered) == 0 {
			fmt.Fprintln(t.out, "No questions found for this category.")
		}
		for i, q := range filtered {
			fmt.Fprintf(t.out, "%d) %s (category: %s)\n", i+1, q.Title, q.Category)
		}

		command, ok := t.prompt("'a' add, 'u <n>' update, 'd <n>' delete, 'f' filter, 'b' back")
		if !ok || t.handleGlobal(command) {
			return
		}
		switch {
		case command == "a":
			t.app.NavigateTo(domain.PageAddQuestion)
			return
		case command == "b":
			t.app.NavigateTo(domain.PageAdminDashboard)
			return
		case command == "f":
			filter = t.chooseFilter(categories)
		case strings.HasPrefix(command, "u "):
			index, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(command, "u ")))
			if err != nil || index < 1 || index > len(filtered) {
				continue
			}
			t.app.EditQuestion(filtered[index-1])
			return
		case strings.HasPrefix(command, "d "):
			index, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(command, "d ")))
			if err != nil || index < 1 || index > len(filtered) {
				continue
			}
			if t.confirm("Are you sure you want to delete this question?") {
				if t.app.DeleteQuestion(ctx, filtered[index-1].ID) {
					questions, categories = t.app.FetchQuestionData(ctx)
				}
			}
		default:
			return
		}
	}
}

func (t *Terminal) chooseFilter(categories []string) string {
	options := append([]string{"All"}, categories...)
	for i, category := range options {
		fmt.Fprintf(t.out, "%d) %s\n", i+1, category)
	}
	choice, ok := t.prompt("Filter by category")
	if !ok {
		return "All"
	}
	index, err := strconv.Atoi(choice)
	if err != nil || index < 1 || index > len(options) {
		return "All"
	}
	return options[index-1]
}

func (t *Terminal) addQuestionPage(ctx context.Context) {
	fmt.Fprintln(t.out, "-- Add New Question --")
	fmt.Fprintln(t.out, "Enter the question title, or 'cancel' to go back.")

	question, ok := t.promptQuestionForm(domain.Question{})
	if !ok {
		return
	}
	if question == nil {
		t.app.NavigateTo(domain.PageManageQuestions)
		return
	}
	t.app.AddQuestion(ctx, *question)
}

func (t *Terminal) updateQuestionPage(ctx context.Context) {
	selected := t.app.SelectedQuestion()
	if selected == nil {
		fmt.Fprintln(t.out, "No question selected.")
		t.app.NavigateTo(domain.PageManageQuestions)
		return
	}

	fmt.Fprintln(t.out, "-- Update Question --")
	fmt.Fprintln(t.out, "Press enter to keep the current value, or 'cancel' at the title to go back.")

	question, ok := t.promptQuestionForm(*selected)
	if !ok {
		return
	}
	if question == nil {
		t.app.NavigateTo(domain.PageManageQuestions)
		return
	}
	question.ID = selected.ID
	t.app.UpdateQuestion(ctx, *question)
}

// promptQuestionForm collects the question fields. It returns (nil, true)
// when the user cancelled and (nil, false) when input ended.
func (t *Terminal) promptQuestionForm(current domain.Question) (*domain.Question, bool) {
	title, ok := t.promptWithDefault("Question title", current.Title)
	if !ok {
		return nil, false
	}
	if strings.EqualFold(title, "cancel") || title == "" {
		return nil, true
	}

	fields := []struct {
		label string
		value *string
	}{
		{"Option 1", &current.Option1},
		{"Option 2", &current.Option2},
		{"Option 3", &current.Option3},
		{"Option 4", &current.Option4},
		{"Right answer", &current.RightAnswer},
		{"Difficulty level", &current.DifficultyLevel},
		{"Category", &current.Category},
	}
	for _, field := range fields {
		value, ok := t.promptWithDefault(field.label, *field.value)
		if !ok {
			return nil, false
		}
		*field.value = value
	}

	current.Title = title
	return &current, true
}
