// Generates a small AAD-shaped SQLite database for manual aadex runs.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"math/rand"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

var (
	attackTypes = []string{
		"CAN Injection", "Key Fob Relay", "Firmware Tampering",
		"Telematics Exploit", "OBD-II Access", "GPS Spoofing",
		"Infotainment Exploit", "Sensor Spoofing", "ECU Reprogramming",
		"Bluetooth Exploit", "Cellular Exploit", "Supply Chain",
	}
	properties = []string{
		"Confidentiality", "Integrity", "Availability",
		"Authenticity", "Privacy", "Integrity, Availability",
	}
	yearForms = []string{"%d", "%d (est.)", "ca. %d", "%d"}
)

func main() {
	var (
		rows   = flag.Int("rows", 500, "Number of attack rows to generate")
		output = flag.String("output", "sample_aad.db", "Output database path")
		seed   = flag.Int64("seed", 42, "Random seed")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	os.Remove(*output)
	db, err := sql.Open("sqlite3", *output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	schema := `CREATE TABLE "Automotive Security Attacks" (
		"Attack ID" TEXT,
		"Year" TEXT,
		"Attack Type" TEXT,
		"Violated Security Property" TEXT,
		"Description" TEXT
	);
	CREATE TABLE "References" (
		"Attack ID" TEXT,
		"Source" TEXT,
		"URL" TEXT
	);`
	if _, err := db.Exec(schema); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating schema: %v\n", err)
		os.Exit(1)
	}

	tx, err := db.Begin()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting transaction: %v\n", err)
		os.Exit(1)
	}

	attackStmt, err := tx.Prepare(`INSERT INTO "Automotive Security Attacks" VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing insert: %v\n", err)
		os.Exit(1)
	}
	refStmt, err := tx.Prepare(`INSERT INTO "References" VALUES (?, ?, ?)`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing insert: %v\n", err)
		os.Exit(1)
	}

	for i := 0; i < *rows; i++ {
		id := fmt.Sprintf("AAD-%04d", i+1)
		year := fmt.Sprintf(yearForms[rng.Intn(len(yearForms))], 2005+rng.Intn(20))
		attackType := attackTypes[rng.Intn(len(attackTypes))]
		property := properties[rng.Intn(len(properties))]
		// Descriptions carry embedded newlines so export sanitization
		// has something to strip.
		description := fmt.Sprintf("Demonstrated %s attack.\nReported in %s.", attackType, year)

		if _, err := attackStmt.Exec(id, year, attackType, property, description); err != nil {
			fmt.Fprintf(os.Stderr, "Error inserting row: %v\n", err)
			os.Exit(1)
		}
		if _, err := refStmt.Exec(id, "Sample Corpus", fmt.Sprintf("https://example.com/%s", id)); err != nil {
			fmt.Fprintf(os.Stderr, "Error inserting reference: %v\n", err)
			os.Exit(1)
		}
	}

	attackStmt.Close()
	refStmt.Close()
	if err := tx.Commit(); err != nil {
		fmt.Fprintf(os.Stderr, "Error committing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d attacks in %s\n", *rows, *output)
}
