package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ieee0824/bli-go/internal/logging"
	"github.com/ieee0824/bli-go/lexicon"
	"github.com/ieee0824/bli-go/survey"
)

func main() {
	dictPath := flag.String("dict", "", "ranked dictionary the survey was built from (required)")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: surveyeval -dict ranked.json <form.json> <responses.json> [<form.json> <responses.json>...]")
		fmt.Fprintln(os.Stderr, "  Scores a ranked dictionary against exported survey answers.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *dictPath == "" || flag.NArg() < 2 || flag.NArg()%2 != 0 {
		flag.Usage()
		os.Exit(1)
	}
	log := logging.New(*logLevel, nil)

	dict, err := lexicon.LoadTranslationsFile(*dictPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	e := survey.NewEvaluator(dict)
	args := flag.Args()
	for i := 0; i < len(args); i += 2 {
		form, err := survey.LoadFormFile(args[i])
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", args[i], err)
			os.Exit(1)
		}
		responses, err := survey.LoadResponsesFile(args[i+1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", args[i+1], err)
			os.Exit(1)
		}
		log.WithField("form", form.FormID).WithField("questions", len(form.Questions())).WithField("responses", len(responses)).Info("scoring form")
		e.AddForm(form, responses)
	}

	r := e.Report()
	if r.Kept == 0 {
		fmt.Fprintln(os.Stderr, "error: no answer reached a majority")
		os.Exit(1)
	}
	fmt.Printf("The dictionary scored %v on the best translation task.\n", r.MRR)
	fmt.Printf("The dictionary scored %v as P@1.\n", r.P1)
	fmt.Printf("The dictionary scored %v as P@5.\n", r.P5)
	fmt.Printf("The dictionary scored %v as P@10.\n", r.P10)
	fmt.Printf("%d scores were kept. %d scores were discarded.\n", r.Kept, r.Discarded)
	fmt.Printf("%d translations were almost correct, %d were entirely correct and %d were incorrect.\n",
		r.AlmostCorrect, r.Correct, r.Incorrect)
	fmt.Printf("%d almost correct scores were kept. %d almost correct scores were discarded.\n",
		r.AlmostKept, r.AlmostDiscarded)
	fmt.Printf("%d words were not answered in the top 10 list.\n", r.Unranked)
	if r.Unrecognized > 0 {
		log.WithField("answers", r.Unrecognized).Warn("answers matched neither the dictionary nor yes/no")
	}
}
