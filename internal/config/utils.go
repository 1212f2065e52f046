package config

import "log"

// PrintConfig logs the resolved configuration. None of these fields are
// sensitive, unlike the teacher's version which had to redact credentials.
func (c *Config) PrintConfig() {
	log.Println("=== Configuration ===")
	log.Printf("Min Solution Diversity Percent: %d", c.MinSolutionDiversityPercent)
	log.Printf("Max Time Per Solution Ms: %d", c.MaxTimePerSolutionMs)
	log.Printf("Enable Detailed Logging: %v", c.EnableDetailedLogging)
	log.Printf("Default Kitchen Cap: %d", c.DefaultKitchenCap)
	log.Printf("Default Top N: %d", c.DefaultTopN)
	log.Printf("Greedy Random Seed: %d", c.GreedyRandomSeed)
	log.Println("=====================")
}
