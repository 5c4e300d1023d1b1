/*
Package roster provides an in-memory registry of project participants and
the hourly rate of each seniority level.

# Overview

A Registry holds an ordered collection of participants and a pricing table.
Lookups and mutations are asynchronous: each call is validated immediately,
then its body runs after a fixed work delay and the result is delivered
through a Task and an optional callback. Only one asynchronous operation is
in flight at a time; a second call made meanwhile is rejected with ErrBusy
instead of being queued.

# Basic Usage

	reg := roster.New()
	reg.Init(
	    []*roster.Participant{roster.MustParticipant("junior", roster.WithName("Ann"))},
	    map[string]float64{"junior": 10},
	)

	task, err := reg.AddParticipant(ctx, roster.MustParticipant("senior"), nil)
	if err != nil {
	    // roster.Retryable(err) reports a busy rejection
	}
	if _, err := task.Wait(ctx); err != nil {
	    // errors.Is(err, roster.ErrMissingSeniorityLevel)
	}

	total, err := reg.CalculateSalary(2) // rate * days * HoursPerDay per participant

# Callbacks

A callback runs after the registry is released, so it may chain the next
operation:

	reg.FindParticipant(ctx, roster.ByName("Ann"), func(res roster.Result[*roster.Participant]) {
	    if res.Value != nil {
	        reg.RemoveParticipant(ctx, res.Value, nil)
	    }
	})

# Identity

Participants are compared by pointer. RemoveParticipant removes the stored
entry that is the same *Participant, so pass a value obtained from
FindParticipant or Participants.

# Configuration

ModuleFromConfig builds a Module from a config.Config loaded from YAML, JSON,
HCL or dotenv files. See the config package.

# Observability

Registries accept a slog logger, an OpenTelemetry metrics recorder, a span
manager and an event bus through options. All default to no-ops except the
logger, which defaults to slog.Default().
*/
package roster
