package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/adapter"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/domain"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/orchestrator"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/solver/bruteforce"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/solver/cp"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/solver/greedy"
	"github.com/h-rajagopal/cart-bundler-v0/internal/config"
)

var (
	solvePeople     int
	solveBudgetCPP  int
	solveKitchenCap int
	solveTopN       int
	solveSolver     string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Build and compare bundles against the built-in sample menu",
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&solvePeople, "people", 6, "headcount to serve")
	solveCmd.Flags().IntVar(&solveBudgetCPP, "budget-per-person", 800, "max spend per person, in cents")
	solveCmd.Flags().IntVar(&solveKitchenCap, "kitchen-cap", 0, "kitchen prep load capacity (0 = config default)")
	solveCmd.Flags().IntVar(&solveTopN, "top-n", 0, "number of solutions to request (0 = config default)")
	solveCmd.Flags().StringVar(&solveSolver, "solver", "MILP", "solver kind: MILP, GREEDY, or BRUTE_FORCE")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cmd: %w", err)
	}

	var logger *zap.Logger
	if cfg.EnableDetailedLogging {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("cmd: building logger: %w", err)
	}
	defer logger.Sync()

	kitchenCap := solveKitchenCap
	if kitchenCap <= 0 {
		kitchenCap = cfg.DefaultKitchenCap
	}
	topN := solveTopN
	if topN <= 0 {
		topN = cfg.DefaultTopN
	}

	solverKind := domain.SolverKind(solveSolver)

	req := domain.BundleRequest{
		People:                 solvePeople,
		MaxPricePerPersonCents: solveBudgetCPP,
		RequiredByDiet: map[domain.Diet]int{
			domain.DietVegan:      solvePeople / 3,
			domain.DietVegetarian: solvePeople / 3,
		},
		TopN: topN,
	}

	items := adapter.SplitAll(sampleMenu())

	cpSolver := cp.NewSolver(cfg.MinSolutionDiversityPercent, cfg.MaxTimePerSolutionMs, logger)
	greedySolver := greedy.NewSolver(cfg.GreedyRandomSeed, logger)
	bruteSolver := bruteforce.NewSolver(logger)
	orch := orchestrator.New(cpSolver, greedySolver, bruteSolver, logger)

	result, err := orch.Build(context.Background(), req, items, kitchenCap, solverKind)
	if err != nil {
		return fmt.Errorf("cmd: build: %w", err)
	}

	printResult(result)
	return nil
}

func printResult(result orchestrator.BundleComparison) {
	fmt.Printf("requestID=%s solver=%s found=%d elapsed=%dms\n",
		result.RequestID, result.SolverType, len(result.Solutions), result.FindingTimeMs)
	for _, w := range result.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	for i, sol := range result.Solutions {
		fmt.Printf("  #%d score=%d totalCost=%d avgPerPerson=%d popular%%=%.1f kitchen%%=%.1f\n",
			i+1, sol.OptimalityScore, sol.TotalCost, sol.AveragePerPersonCents, sol.PopularItemsPercent, sol.KitchenLoadPercent)
		for item, qty := range sol.Items {
			fmt.Printf("    %-20s x%d\n", item.Name, qty)
		}
	}
}

// sampleMenu is the small built-in menu the solve command always runs
// against, enough to exercise every diet and a spread of ratings.
func sampleMenu() []adapter.MenuItemInput {
	return []adapter.MenuItemInput{
		{
			ID: "paneer-tikka", Name: "Paneer Tikka", PriceCents: 4800, Serves: 4,
			Diet: domain.DietVegetarian, Stock: 40, Load: 2,
			Rating: &adapter.Rating{UpvoteCount: 180, DownvoteCount: 20, ReviewCount: 150},
		},
		{
			ID: "chana-masala", Name: "Chana Masala", PriceCents: 3600, Serves: 6,
			Diet: domain.DietVegan, Stock: 60, Load: 1,
			Rating: &adapter.Rating{UpvoteCount: 90, DownvoteCount: 10, ReviewCount: 80},
		},
		{
			ID: "veg-biryani", Name: "Vegetable Biryani", PriceCents: 5200, Serves: 5,
			Diet: domain.DietVegan, Stock: 50, Load: 3,
			Rating: &adapter.Rating{UpvoteCount: 60, DownvoteCount: 30, ReviewCount: 70},
		},
		{
			ID: "butter-chicken", Name: "Butter Chicken", PriceCents: 6400, Serves: 4,
			Diet: domain.DietMeat, Stock: 40, Load: 3,
			Rating: &adapter.Rating{UpvoteCount: 200, DownvoteCount: 15, ReviewCount: 180},
		},
		{
			ID: "lamb-curry", Name: "Lamb Curry", PriceCents: 7200, Serves: 4,
			Diet: domain.DietMeat, Stock: 24, Load: 4,
			Rating: &adapter.Rating{UpvoteCount: 40, DownvoteCount: 20, ReviewCount: 35},
		},
		{
			ID: "garlic-naan", Name: "Garlic Naan", PriceCents: 2400, Serves: 8,
			Diet: domain.DietVegetarian, Stock: 80, Load: 1,
			Rating: &adapter.Rating{UpvoteCount: 140, DownvoteCount: 10, ReviewCount: 120},
		},
	}
}
