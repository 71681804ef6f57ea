package main

import (
	"fmt"
	"log"

	"os"

	"github.com/deanrtaylor1/textanalyzer/analyzer"
	"github.com/deanrtaylor1/textanalyzer/cli"
	"github.com/deanrtaylor1/textanalyzer/server"
	"github.com/deanrtaylor1/textanalyzer/util"
	webcrawler "github.com/deanrtaylor1/textanalyzer/web-crawler"
)

func help() {
	fmt.Println("TextAnalyzer - stem frequency reports for text documents")
	fmt.Println("Author: Dean Taylor")
	fmt.Println("Version: 0.1")
	fmt.Println("License: MIT")

	fmt.Println("Usage: PROGRAM [SUBCOMMAND|FILES...]")
	fmt.Println("----------------------------------")
	fmt.Println("    FILE...:                        analyze stemmed documents, one report per file")
	fmt.Println("Subcommands:")
	fmt.Println("    cli:                            interactive prompt to analyze or crawl")
	fmt.Println("    crawl URL:                      crawl a domain and report every page")
	fmt.Println("    serve [ADDR]:                   start the analyzer api (default :8080)")
	fmt.Println("    help:                           list all commands")
}

func main() {
	args := os.Args[1:]
	if len(args) < 1 {
		help()
		os.Exit(1)
	}

	switch args[0] {
	case "cli":
		cli.Run()

	case "serve":
		addr := ":8080"
		if len(args) > 1 {
			addr = args[1]
		}
		server.Serve(addr)

	case "crawl":
		if len(args) < 2 {
			help()
			os.Exit(1)
		}
		if _, err := webcrawler.CrawlDomain(args[1], webcrawler.FileOpsImpl{}, webcrawler.MaxURLsToCrawl); err != nil {
			log.Fatal(err)
		}

	case "help", "-help":
		help()

	default:
		// Every argument is an independent stemmed document
		for _, fileName := range args {
			if err := analyzer.AnalyzeFile(fileName); err != nil {
				log.Fatal(err)
			}
			fmt.Println(util.TerminalGreen + "Report written to " + analyzer.OutputName(fileName) + util.TerminalReset)
		}
	}
}
