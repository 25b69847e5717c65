// ABOUTME: Basic example showing course search with the Course Finder library
// ABOUTME: Demonstrates minimal configuration and common use cases

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"coursefinder-api/coursefinder"
)

func main() {
	// Example 1: Create a client with default dependencies
	client, err := coursefinder.NewClient(
		coursefinder.WithDefaultDependencies(),
		coursefinder.WithCorpusTTL(30*time.Minute),
	)
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Example 2: Search for courses
	fmt.Println("=== Searching for Data Science ===")
	results, err := client.Search(ctx, "Data Science")
	switch {
	case coursefinder.IsNoCoursesError(err):
		fmt.Println("No courses available, try again in a few moments")
	case err != nil:
		log.Printf("Error searching: %v\n", err)
	default:
		for _, r := range results {
			fmt.Printf("%.2f  %-60s %s\n", r.Score, r.Title, r.Platform)
		}
	}

	// Example 3: Inspect platform outcomes
	fmt.Println("\n=== Platform Status ===")
	for _, s := range client.Statuses() {
		if s.Error != "" {
			fmt.Printf("- %s: failed (%s)\n", s.Platform, s.Error)
			continue
		}
		fmt.Printf("- %s: %d courses in %s\n", s.Platform, s.Count, s.Duration.Round(time.Millisecond))
	}

	// Example 4: Browse the corpus
	fmt.Println("\n=== First Courses ===")
	courses, err := client.Courses(ctx)
	if err != nil {
		log.Printf("Error listing courses: %v\n", err)
		return
	}
	for i, c := range courses {
		if i == 5 {
			break
		}
		fmt.Printf("- %s (%s)\n", c.Title, c.Link)
	}
}
