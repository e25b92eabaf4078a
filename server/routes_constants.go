package server

const (
	// Candidate interview routes
	interviewsRoute        = "/api/interviews"
	interviewRoute         = "/api/interviews/{id}"
	interviewResumeRoute   = "/api/interviews/{id}/resume"
	interviewMessagesRoute = "/api/interviews/{id}/messages"
	interviewFinalizeRoute = "/api/interviews/{id}/finalize"

	// Reviewer account routes
	reviewerRegisterRoute = "/api/reviewer/register"
	reviewerLoginRoute    = "/api/reviewer/login"
	reviewerLogoutRoute   = "/api/reviewer/logout"
	reviewerStatusRoute   = "/api/reviewer/status"

	// Dashboard routes, reviewer only
	dashboardInterviewsRoute = "/api/dashboard/interviews"
	dashboardStatsRoute      = "/api/dashboard/stats"
	dashboardPasskeysRoute   = "/api/dashboard/passkeys"
	dashboardPasskeyRoute    = "/api/dashboard/passkeys/{token}"

	healthRoute = "/healthz"

	resumeFormField = "resume"
	contentTypeJSON = "application/json; charset=utf-8"
)
