// Command apply lists jobs on a job board and submits applications to it.
//
//	apply -server http://localhost:8080 jobs
//	apply -job <id> -first Ada -last Lovelace -email ada@example.com \
//	      -phone 555-0100 -experience 5-10 -auth citizen -resume cv.pdf submit
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/justsurfingit/job-board/internal/client"
)

func main() {
	server := flag.String("server", envOr("JOB_BOARD_URL", "http://localhost:8080"), "job board base URL")
	jobID := flag.String("job", "", "job id")
	resume := flag.String("resume", "", "path to a PDF, DOC or DOCX resume")
	form := map[string]*string{
		"firstName":         flag.String("first", "", "first name"),
		"lastName":          flag.String("last", "", "last name"),
		"email":             flag.String("email", "", "email address"),
		"phone":             flag.String("phone", "", "phone number"),
		"experience":        flag.String("experience", "", "years of experience"),
		"workAuthorization": flag.String("auth", "", "work authorization"),
		"coverLetter":       flag.String("cover", "", "cover letter"),
		"linkedin":          flag.String("linkedin", "", "LinkedIn profile URL"),
		"portfolio":         flag.String("portfolio", "", "portfolio URL"),
		"currentSalary":     flag.String("current-salary", "", "current salary"),
		"expectedSalary":    flag.String("expected-salary", "", "expected salary"),
		"startDate":         flag.String("start", "", "earliest start date"),
	}
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] jobs|job|applications|submit\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	c := client.New(*server)

	var (
		out any
		err error
	)
	switch flag.Arg(0) {
	case "jobs":
		out, err = c.ListJobs(ctx)
	case "job":
		out, err = c.GetJob(ctx, required("job", *jobID))
	case "applications":
		out, err = c.ApplicationsForJob(ctx, required("job", *jobID))
	case "submit":
		fields := map[string]string{"jobId": required("job", *jobID)}
		for k, v := range form {
			if *v != "" {
				fields[k] = *v
			}
		}
		data, rerr := os.ReadFile(required("resume", *resume))
		if rerr != nil {
			log.Fatal(rerr)
		}
		out, err = c.SubmitApplication(ctx, fields, client.ResumeFile{Name: *resume, Content: data})
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal("❌ ", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
}

func required(name, v string) string {
	if v == "" {
		log.Fatalf("-%s is required", name)
	}
	return v
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
