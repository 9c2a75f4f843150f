package main

import (
	"context"

	"github.com/stepflow/runtime/effectuation"
	"github.com/stepflow/runtime/execution"
	"github.com/stepflow/runtime/message"
	"github.com/stepflow/runtime/severity"
)

// demoMessages is the hand-built catalog for the demonstration work item.
type demoMessages struct {
	catalog map[string]message.Message
}

func newDemoMessages() *demoMessages {
	return &demoMessages{catalog: map[string]message.Message{
		"prepared": message.New("prepared", severity.Info,
			message.Text{
				message.English: "workspace prepared at $1",
				message.German:  "Arbeitsbereich unter $1 vorbereitet",
				message.French:  "espace de travail prépare sous $1",
			}),
		"transient": message.New("transient", severity.Fatal,
			message.Text{message.English: "transient backend failure on attempt $1"}).
			WithSolution(message.Text{message.English: "retried automatically"}),
		"summary": message.New("summary", severity.Info,
			message.Text{message.English: "processed $1 records"}),
	}}
}

func (d *demoMessages) Messages() map[string]message.Message { return d.catalog }

// runDemoWorkItem exercises the operator surface: a step calling a shared
// sub-step twice (deduplicated), an optional part, a dispensable part, and
// an appeased region demoting a Fatal to an Error.
func runDemoWorkItem(ctx context.Context, exec *execution.Execution) {
	msgs := message.NewCollector()
	if err := msgs.Collect(newDemoMessages()); err != nil {
		panic(err)
	}

	prepare := effectuation.New("demo", "prepare")
	ingest := effectuation.New("demo", "ingest")
	report := effectuation.New("demo", "report")

	exec.Effectuate(report, func() any {
		exec.Effectuate(prepare, func() any {
			exec.Log(msgs.MustGet("prepared"), "/tmp/stepflow")
			return nil
		})

		exec.Effectuate(ingest, func() any {
			// prepare is already done; this entry dedups into a skip.
			exec.Effectuate(prepare, func() any { return nil })

			exec.Appease(severity.Error, func() any {
				exec.Log(msgs.MustGet("transient"), 1)
				return nil
			})
			return nil
		})

		exec.Optional("demo:extra-validation", func() any {
			exec.Doing("validating record checksums", func() any { return nil })
			return nil
		})

		exec.Dispensable("demo:archive", func() any {
			if ctx.Err() != nil {
				return nil
			}
			exec.Log(msgs.MustGet("summary"), 42)
			return nil
		})

		return nil
	})
}
