package main

import (
	"fmt"
	"os"

	"github.com/rpgo/annuity-planner/internal/domain"
	"github.com/rpgo/annuity-planner/internal/mortality"
)

// Prints a mortality table side by side, the embedded one by default.
func main() {
	table := mortality.Default()
	if len(os.Args) > 1 {
		t, err := mortality.Load(os.Args[1])
		if err != nil {
			fmt.Println("load error:", err)
			os.Exit(1)
		}
		table = t
	}

	fmt.Printf("%s (ages %d-%d, %.1f years beyond)\n", table.Name(), table.MinAge(), table.MaxAge(), table.BeyondMaxYears())
	fmt.Printf("%5s %8s %8s\n", "age", "male", "female")
	for age := table.MinAge(); age <= table.MaxAge(); age++ {
		m, _ := table.RemainingYears(float64(age), domain.Male)
		f, _ := table.RemainingYears(float64(age), domain.Female)
		fmt.Printf("%5d %8.1f %8.1f\n", age, m, f)
	}
}
