package view

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spec-kit/quiz-client/internal/domain"
)

func (t *Terminal) userDashboardPage(ctx context.Context) {
	fmt.Fprintln(t.out, "-- Available Quizzes --")

	quizzes := t.app.FetchQuizzes(ctx)
	if len(quizzes) == 0 {
		fmt.Fprintln(t.out, "No quizzes available.")
	}
	for i, quiz := range quizzes {
		fmt.Fprintf(t.out, "%d) %s (%d questions)\n", i+1, quiz.Title, len(quiz.Questions))
	}

	command, ok := t.prompt("Quiz number to start, or 'logout'/'quit'")
	if !ok || t.handleGlobal(command) {
		return
	}
	index, err := strconv.Atoi(command)
	if err != nil || index < 1 || index > len(quizzes) {
		return
	}
	t.app.StartQuiz(quizzes[index-1].ID)
}

func (t *Terminal) quizPage(ctx context.Context) {
	quizID := t.app.SelectedQuizID()
	if quizID == 0 {
		fmt.Fprintln(t.out, "No quiz selected.")
		t.app.NavigateTo(domain.PageUserDashboard)
		return
	}

	questions := t.app.FetchQuizQuestions(ctx, quizID)
	if len(questions) == 0 {
		fmt.Fprintln(t.out, "No questions found.")
		t.app.NavigateTo(domain.PageUserDashboard)
		return
	}

	answers := make(map[int]string, len(questions))
	index := 0
	for {
		question := questions[index]
		options := question.Options()

		fmt.Fprintf(t.out, "\nQuestion %d of %d\n", index+1, len(questions))
		fmt.Fprintln(t.out, question.Title)
		for i, option := range options {
			marker := " "
			if answers[question.ID] == option {
				marker = "*"
			}
			fmt.Fprintf(t.out, " %s %d) %s\n", marker, i+1, option)
		}

		hint := "option number to answer, 'p' previous, 'n' next"
		if index == len(questions)-1 {
			hint = "option number to answer, 'p' previous, 's' submit"
		}
		command, ok := t.prompt(hint)
		if !ok {
			return
		}
		switch command {
		case "p":
			if index > 0 {
				index--
			}
		case "n":
			if index < len(questions)-1 {
				index++
			}
		case "s":
			if index == len(questions)-1 && t.submitQuiz(ctx, quizID, questions, answers) {
				return
			}
		default:
			choice, err := strconv.Atoi(command)
			if err == nil && choice >= 1 && choice <= len(options) {
				answers[question.ID] = options[choice-1]
			}
		}
	}
}

// submitQuiz reports whether the submission went through. On failure the
// caller keeps the quiz open so the answers are not lost.
func (t *Terminal) submitQuiz(ctx context.Context, quizID int, questions []domain.Question, answers map[int]string) bool {
	responses := make([]domain.Answer, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, domain.Answer{
			ID:       question.ID,
			Response: answers[question.ID],
		})
	}

	score, ok := t.app.SubmitQuiz(ctx, quizID, responses)
	if !ok {
		return false
	}
	fmt.Fprintln(t.out, "\nQuiz Complete!")
	fmt.Fprintf(t.out, "Your score is: %d / %d\n", score, len(questions))
	t.app.NavigateTo(domain.PageUserDashboard)
	return true
}
