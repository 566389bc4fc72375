package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/prompt"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/training"
)

// cmdCompile parses a merchant training file and previews the parsed
// structure and the resulting system instruction. Useful when writing
// training material by hand.
func cmdCompile() *cli.Command {
	var trainingPath string
	var moduleName string
	var showPrompt bool

	return &cli.Command{
		Name:    "compile",
		Aliases: []string{"c"},
		Usage:   "Parse a training text file and preview the compiled system instruction",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "training-file",
				Aliases:     []string{"f"},
				Usage:       "Path to the merchant training text file",
				Required:    true,
				Destination: &trainingPath,
			},
			&cli.StringFlag{
				Name:        "module-name",
				Usage:       "Module name used in the role framing",
				Value:       "shop",
				Destination: &moduleName,
			},
			&cli.BoolFlag{
				Name:        "prompt",
				Usage:       "Also print the compiled system instruction",
				Value:       true,
				Destination: &showPrompt,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			raw, err := os.ReadFile(trainingPath)
			if err != nil {
				return goerr.Wrap(err, "failed to read training file", goerr.V("path", trainingPath))
			}

			td := training.Parse(string(raw))
			printTraining(td)

			if showPrompt {
				module := &model.Module{Name: moduleName, Training: td}
				header := color.New(color.FgCyan, color.Bold)
				header.Println("\n── System instruction ──")
				fmt.Println(prompt.Compile(module, nil))
			}
			return nil
		},
	}
}

func printTraining(td *model.TrainingData) {
	section := color.New(color.FgGreen, color.Bold)
	label := color.New(color.FgYellow)

	section.Println("── Product info ──")
	if strings.TrimSpace(td.ProductInfo) == "" {
		fmt.Println("(none)")
	} else {
		fmt.Println(strings.TrimSpace(td.ProductInfo))
	}

	section.Println("\n── Sales flow ──")
	for _, s := range td.SalesFlow {
		label.Printf("Step %d: ", s.Step)
		fmt.Print(s.Name)
		if s.Description != "" {
			fmt.Printf(" - %s", s.Description)
		}
		if len(s.Triggers) > 0 {
			fmt.Printf(" (khi: %s)", strings.Join(s.Triggers, ", "))
		}
		fmt.Println()
	}

	section.Println("\n── Communication style ──")
	label.Print("Tone: ")
	fmt.Println(td.Style.Tone)
	label.Print("Language: ")
	fmt.Println(td.Style.Language)
	label.Print("Emoji: ")
	fmt.Println(td.Style.UseEmoji)
	if len(td.Style.Abbreviations) > 0 {
		label.Print("Abbreviations: ")
		fmt.Println(strings.Join(td.Style.Abbreviations, ", "))
	}

	section.Println("\n── FAQ ──")
	if len(td.FAQs) == 0 {
		fmt.Println("(none)")
	}
	for _, f := range td.FAQs {
		label.Print("Q: ")
		fmt.Println(f.Question)
		label.Print("A: ")
		fmt.Println(f.Answer)
	}
}
