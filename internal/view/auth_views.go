package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/quiz-client/internal/domain"
)

func (t *Terminal) loginPage(ctx context.Context) {
	fmt.Fprintln(t.out, "-- Login --")
	fmt.Fprintln(t.out, "Enter your username, or 'register' to create an account, 'quit' to exit.")

	username, ok := t.prompt("Username")
	if !ok {
		return
	}
	switch strings.ToLower(username) {
	case "quit", "exit":
		t.quit = true
		return
	case "register":
		t.app.NavigateTo(domain.PageRegister)
		return
	case "":
		return
	}

	password, ok := t.prompt("Password")
	if !ok {
		return
	}
	t.app.Login(ctx, username, password)
}

func (t *Terminal) registerPage(ctx context.Context) {
	fmt.Fprintln(t.out, "-- Create Account --")
	fmt.Fprintln(t.out, "Enter a username, or 'back' to return to login.")

	username, ok := t.prompt("Username")
	if !ok {
		return
	}
	if strings.EqualFold(username, "back") || username == "" {
		t.app.NavigateTo(domain.PageLogin)
		return
	}
	email, ok := t.prompt("Email (optional)")
	if !ok {
		return
	}
	password, ok := t.prompt("Password")
	if !ok {
		return
	}
	t.app.Register(ctx, username, password, email)
}

func (t *Terminal) createAdminPage(ctx context.Context) {
	fmt.Fprintln(t.out, "-- Create New User --")
	fmt.Fprintln(t.out, "Enter a username, or 'back' to return to the dashboard.")

	username, ok := t.prompt("Username")
	if !ok {
		return
	}
	if strings.EqualFold(username, "back") || username == "" {
		t.app.NavigateTo(domain.PageAdminDashboard)
		return
	}
	email, ok := t.prompt("Email (optional)")
	if !ok {
		return
	}
	password, ok := t.prompt("Password")
	if !ok {
		return
	}
	role, ok := t.prompt("Role (ADMIN/USER)")
	if !ok {
		return
	}
	role = strings.ToUpper(role)
	if role != "ADMIN" && role != "USER" {
		role = "USER"
	}
	t.app.CreateUser(ctx, username, password, email, role)
}
