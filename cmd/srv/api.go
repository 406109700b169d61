package main

import (
	"fmt"
	"net/http"

	"github.com/mangrove-guardian/backend/internal/middleware"
	"github.com/mangrove-guardian/backend/pkg/router"
	"github.com/mangrove-guardian/backend/pkg/xcontext"

	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.loadStorage()
	s.loadPublisher()
	if xcontext.Configs(s.ctx).Redis.RateLimit > 0 {
		s.loadRedisClient()
	}
	s.loadEndpoint()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.ApiServer.AllowedOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ApiServer.Port),
		Handler: c.Handler(s.router.Handler()),
	}

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())

	// Public API
	publicRouter := s.router.Branch()
	{
		router.POST(publicRouter, "/signup", s.authDomain.Signup)
		router.POST(publicRouter, "/signin", s.authDomain.Signin)

		router.GET(publicRouter, "/getCourses", s.educationDomain.GetCourses)
		router.GET(publicRouter, "/getCourse", s.educationDomain.GetCourse)
		router.GET(publicRouter, "/getQuizzes", s.educationDomain.GetQuizzes)
		router.GET(publicRouter, "/getQuiz", s.educationDomain.GetQuiz)
		router.GET(publicRouter, "/getGuides", s.educationDomain.GetGuides)
		router.GET(publicRouter, "/getGuide", s.educationDomain.GetGuide)
		router.GET(publicRouter, "/getLeaderboard", s.userDomain.GetLeaderboard)
	}

	// These following APIs need authentication with Access Token.
	authRouter := s.router.Branch()
	authVerifier := middleware.NewAuthVerifier().WithAccessToken()
	authRouter.Before(authVerifier.Middleware())
	authRouter.Before(middleware.NewRateLimiter(s.redisClient).Middleware())
	{
		// User API
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.GET(authRouter, "/getMyBalance", s.userDomain.GetMyBalance)
		router.POST(authRouter, "/updateProfile", s.userDomain.UpdateProfile)
		router.GET(authRouter, "/getUsers", s.userDomain.GetUsers)
		router.GET(authRouter, "/getUser", s.userDomain.GetUser)
		router.POST(authRouter, "/updateUser", s.userDomain.UpdateUser)
		router.POST(authRouter, "/banUser", s.userDomain.BanUser)

		// Report API
		router.POST(authRouter, "/createReport", s.reportDomain.Create)
		router.GET(authRouter, "/getReport", s.reportDomain.Get)
		router.GET(authRouter, "/getReports", s.reportDomain.GetList)
		router.GET(authRouter, "/getMyReports", s.reportDomain.GetMyReports)
		router.POST(authRouter, "/updateReport", s.reportDomain.Update)
		router.POST(authRouter, "/deleteReport", s.reportDomain.Delete)
		router.POST(authRouter, "/reviewReport", s.reportDomain.Review)
		router.GET(authRouter, "/getReportStats", s.reportDomain.GetStats)

		// Admin API
		router.POST(authRouter, "/createAdminRole", s.adminDomain.CreateAdminRole)
		router.GET(authRouter, "/getAdminRoles", s.adminDomain.GetAdminRoles)
		router.POST(authRouter, "/reviewAdminRole", s.adminDomain.ReviewAdminRole)
		router.POST(authRouter, "/deleteAdminRole", s.adminDomain.DeleteAdminRole)
		router.GET(authRouter, "/getSystemStats", s.adminDomain.GetSystemStats)

		// Education API
		router.POST(authRouter, "/createCourse", s.educationDomain.CreateCourse)
		router.POST(authRouter, "/updateCourse", s.educationDomain.UpdateCourse)
		router.POST(authRouter, "/deleteCourse", s.educationDomain.DeleteCourse)
		router.POST(authRouter, "/createQuiz", s.educationDomain.CreateQuiz)
		router.POST(authRouter, "/updateQuiz", s.educationDomain.UpdateQuiz)
		router.POST(authRouter, "/deleteQuiz", s.educationDomain.DeleteQuiz)
		router.POST(authRouter, "/createGuide", s.educationDomain.CreateGuide)
		router.POST(authRouter, "/submitQuizScore", s.educationDomain.SubmitQuizScore)

		// File API
		router.POST(authRouter, "/uploadEvidence", s.fileDomain.UploadEvidence)
		router.POST(authRouter, "/uploadAvatar", s.fileDomain.UploadAvatar)
	}
}
