package server

import "net/http"

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+healthRoute, s.HealthHandler())

	// Candidate interview
	s.RegisterRouteFunc("POST "+interviewsRoute, ChainMiddleware(s.CreateInterviewHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+interviewRoute, ChainMiddleware(s.InterviewHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+interviewResumeRoute, ChainMiddleware(s.UploadResumeHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+interviewMessagesRoute, ChainMiddleware(s.SubmitMessageHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+interviewFinalizeRoute, ChainMiddleware(s.FinalizeInterviewHandler(), s.APIMiddleware()...))

	// Reviewer account
	s.RegisterRouteFunc("POST "+reviewerRegisterRoute, ChainMiddleware(s.RegisterReviewerHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+reviewerLoginRoute, ChainMiddleware(s.LoginReviewerHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+reviewerLogoutRoute, ChainMiddleware(s.LogoutReviewerHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+reviewerStatusRoute, ChainMiddleware(s.ReviewerStatusHandler(), s.APIMiddleware()...))

	// Dashboard
	s.RegisterRouteFunc("GET "+dashboardInterviewsRoute, ChainMiddleware(s.ListInterviewsHandler(), s.DashboardMiddleware()...))
	s.RegisterRouteFunc("GET "+dashboardStatsRoute, ChainMiddleware(s.StatsHandler(), s.DashboardMiddleware()...))
	s.RegisterRouteFunc("GET "+dashboardPasskeysRoute, ChainMiddleware(s.ListPasskeysHandler(), s.DashboardMiddleware()...))
	s.RegisterRouteFunc("POST "+dashboardPasskeysRoute, ChainMiddleware(s.IssuePasskeyHandler(), s.DashboardMiddleware()...))
	s.RegisterRouteFunc("GET "+dashboardPasskeyRoute, ChainMiddleware(s.PasskeyHandler(), s.DashboardMiddleware()...))

	// CORS preflight for every API path
	s.RegisterRouteFunc("OPTIONS /api/", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, s.APIMiddleware()...))
}
