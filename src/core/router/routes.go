package router

import (
	"fmt"
	"sort"

	"questboard/src/core/cache"
	"questboard/src/core/middleware"
	"questboard/src/core/wallet"
	"questboard/src/modules/authentication"
	"questboard/src/modules/forums"
	"questboard/src/modules/quests"
	"questboard/src/modules/queststats"
	"questboard/src/modules/uploads"
	"questboard/src/modules/users"
	"questboard/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	storage_go "github.com/supabase-community/storage-go"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Dependencies carries the shared handles routed into module handlers.
type Dependencies struct {
	DB          *gorm.DB
	Leaderboard *cache.LeaderboardCache
	Storage     *storage_go.Client
	Bucket      string
	Wallet      *wallet.Client
}

func InitialiseAndSetupRoutes(app *fiber.App, deps Dependencies) {
	root := app.Group("/", logger.New())

	root.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	apiV1 := root.Group("/api/v1")
	setupAPIV1Routes(apiV1, deps)

	routes := app.GetRoutes()
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	for _, route := range routes {
		fmt.Printf("%s\t%s\n", route.Method, route.Path)
	}
}

func setupAPIV1Routes(router fiber.Router, deps Dependencies) {
	authHandler := authentication.NewHandler(deps.DB)
	questHandler := quests.NewHandler(deps.DB)
	statsHandler := queststats.NewHandler(deps.DB, deps.Leaderboard)
	userHandler := users.NewHandler(deps.DB, deps.Leaderboard, deps.Wallet)
	forumHandler := forums.NewHandler(deps.DB)
	uploadHandler := uploads.NewHandler(utils.NewStore(deps.Storage, deps.Bucket))

	// Login attempts are throttled per IP
	authLimiter := middleware.RateLimit(rate.Limit(1), 5)

	router.Post("/signup", authLimiter, authHandler.SignUp)
	router.Post("/login", authLimiter, authHandler.Login)

	questGroup := router.Group("/quests")
	questGroup.Get("/", questHandler.GetQuests)
	questGroup.Post("/create", middleware.Protected(), questHandler.CreateQuest)
	questGroup.Get("/:id", questHandler.GetQuestByID)
	router.Post("/quest/addBounty/:questId", middleware.Protected(), questHandler.AddBounty)

	statsGroup := router.Group("/questStats")
	statsGroup.Get("/:questId", middleware.Protected(), statsHandler.GetQuestStats)
	statsGroup.Post("/:id/answers", middleware.Protected(), statsHandler.SubmitAnswers)

	userGroup := router.Group("/user")
	userGroup.Get("/", middleware.Protected(), userHandler.GetProfile)
	userGroup.Post("/onboarding", middleware.Protected(), userHandler.Onboarding)
	userGroup.Get("/quests", middleware.Protected(), userHandler.GetUserQuests)
	userGroup.Post("/withdraw", middleware.Protected(), userHandler.Withdraw)

	router.Get("/users", userHandler.GetLeaderboard)
	router.Get("/users/:id", userHandler.GetUserByID)

	router.Post("/upload", uploadHandler.Upload)

	forumGroup := router.Group("/forums")
	forumGroup.Get("/", forumHandler.GetForums)
	forumGroup.Post("/", middleware.Protected(), forumHandler.CreateForum)
	forumGroup.Get("/:id", forumHandler.GetForumByID)
	forumGroup.Post("/:id/comments", middleware.Protected(), forumHandler.CreateComment)
	forumGroup.Post("/:forumId/comments/:id/vote", middleware.Protected(), forumHandler.VoteComment)
}
