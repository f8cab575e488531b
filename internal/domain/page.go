package domain

// Page identifies the single currently visible view. Exactly one page is
// active at any time; it lives in memory only and is never persisted.
type Page string

const (
	PageLogin           Page = "login"
	PageRegister        Page = "register"
	PageUserDashboard   Page = "user_dashboard"
	PageAdminDashboard  Page = "admin_dashboard"
	PageCreateAdmin     Page = "create_admin"
	PageManageQuizzes   Page = "manage_quizzes"
	PageManageQuestions Page = "manage_questions"
	PageQuiz            Page = "quiz"
	PageAddQuestion     Page = "add_question"
	PageUpdateQuestion  Page = "update_question"
	PageCreateQuiz      Page = "create_quiz"
)
