// Command simulate hosts a simulation session against a running backend.
// It drives the same engine the map view uses, with a text canvas in
// place of the map surface.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/c5sim/coverage-sim-go/internal/backend"
	"github.com/c5sim/coverage-sim-go/internal/notify"
	"github.com/c5sim/coverage-sim-go/internal/render"
	"github.com/c5sim/coverage-sim-go/internal/workflow"
)

func main() {
	backendURL := flag.String("backend", "http://localhost:8080", "backend base URL")
	flag.Parse()

	canvas := render.NewMemoryCanvas()
	sink := notify.LogSink{}
	client := backend.New(*backendURL, sink)
	session := workflow.NewSession(client, canvas, sink)

	ctx := context.Background()

	if !client.Available(ctx) {
		log.Printf("Warning: backend at %s is not responding; workflows will fail their pre-flight", *backendURL)
	}

	fmt.Println("camera coverage simulator. commands:")
	fmt.Println("  add <lat> <lng>   place a proposed camera")
	fmt.Println("  remove <n>        remove proposal n (1-based)")
	fmt.Println("  clear             remove all proposals")
	fmt.Println("  list              show proposals and their tiers")
	fmt.Println("  eval              evaluate the last-added proposal")
	fmt.Println("  blindspots        run the blind-spot search")
	fmt.Println("  improve           run the coverage optimizer")
	fmt.Println("  save              persist proposals with coverage >= 80")
	fmt.Println("  cameras           list registered cameras")
	fmt.Println("  metrics           show the last optimizer metrics")
	fmt.Println("  quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "add":
			if len(fields) != 3 {
				fmt.Println("usage: add <lat> <lng>")
				continue
			}
			lat, err1 := strconv.ParseFloat(fields[1], 64)
			lng, err2 := strconv.ParseFloat(fields[2], 64)
			if err1 != nil || err2 != nil {
				fmt.Println("usage: add <lat> <lng>")
				continue
			}
			session.AddProposal(lat, lng)
			fmt.Printf("proposal %d placed at (%.5f, %.5f)\n", session.Store.Len(), lat, lng)

		case "remove":
			if len(fields) != 2 {
				fmt.Println("usage: remove <n>")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || session.Store.RemoveAt(n-1) != nil {
				fmt.Println("no such proposal")
				continue
			}
			fmt.Printf("removed proposal %d\n", n)

		case "clear":
			session.Store.Clear()
			fmt.Println("proposals cleared")

		case "list":
			printProposals(session)

		case "eval":
			report(session.EvaluateCoverage(ctx))

		case "blindspots":
			if report(session.DetectBlindSpots(ctx)) {
				for i, s := range session.BlindSpots {
					fmt.Printf("  %2d. (%.5f, %.5f) fitness %.3f\n", i+1, s.Latitude, s.Longitude, s.Fitness)
				}
			}

		case "improve":
			if report(session.ImproveCoverage(ctx)) {
				for i, cam := range session.Optimizer.NewCameras {
					fmt.Printf("  %2d. (%.5f, %.5f)\n", i+1, cam.Latitude, cam.Longitude)
				}
				fmt.Println("  metrics:", session.MetricsSummary())
			}

		case "save":
			report(session.PersistGoodProposals(ctx))

		case "cameras":
			cameras, ok := session.FetchCameras(ctx)
			if !ok {
				fmt.Println("could not fetch the camera list")
				continue
			}
			for _, c := range cameras {
				fmt.Printf("  #%d (%.5f, %.5f)\n", c.ID, c.Latitude, c.Longitude)
			}
			fmt.Printf("%d registered cameras\n", len(cameras))

		case "metrics":
			fmt.Println(session.MetricsSummary())

		case "quit", "exit":
			return

		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

func printProposals(session *workflow.Session) {
	proposals := session.Store.Proposals()
	if len(proposals) == 0 {
		fmt.Println("no proposals placed")
		return
	}
	for i, p := range proposals {
		tier := render.TierFor(p.Coverage)
		if p.Evaluated() {
			fmt.Printf("  %2d. (%.5f, %.5f) %.1f%% [%s]\n", i+1, p.Lat, p.Lng, *p.Coverage, tier)
		} else {
			fmt.Printf("  %2d. (%.5f, %.5f) [%s]\n", i+1, p.Lat, p.Lng, tier)
		}
	}
}

// report prints the workflow outcome and returns true on success
func report(outcome workflow.Outcome) bool {
	switch outcome {
	case workflow.OutcomeSuccess:
		return true
	case workflow.OutcomeSkipped:
		fmt.Println("already running")
	default:
		fmt.Println("failed")
	}
	return false
}
