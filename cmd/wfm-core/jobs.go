package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"wfm/internal/jobs"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect and control jobs on the shared queue",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List running, pending, and recently finished jobs",
	RunE:  runJobsList,
}

var jobsPauseCmd = &cobra.Command{
	Use:   "pause [id]",
	Short: "Pause a running job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsPause,
}

var jobsResumeCmd = &cobra.Command{
	Use:   "resume [id]",
	Short: "Resume a paused job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsResume,
}

var jobsCancelCmd = &cobra.Command{
	Use:   "cancel [id]",
	Short: "Cancel a pending or running job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsCancel,
}

var jobsWaitCmd = &cobra.Command{
	Use:   "wait [id]",
	Short: "Block until a job reaches a terminal state",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsWait,
}

func init() {
	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsPauseCmd)
	jobsCmd.AddCommand(jobsResumeCmd)
	jobsCmd.AddCommand(jobsCancelCmd)
	jobsCmd.AddCommand(jobsWaitCmd)
}

func runJobsList(cmd *cobra.Command, args []string) error {
	for _, snap := range mgr.List() {
		fmt.Printf("%d\t%s\t%s\t%d items\n", snap.ID, snap.Type, snap.State, len(snap.Results))
	}
	return nil
}

func parseJobID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid job id %q: %w", s, err)
	}
	return id, nil
}

func lookupJob(s string) (*jobs.Job, error) {
	id, err := parseJobID(s)
	if err != nil {
		return nil, err
	}
	job, ok := mgr.Job(id)
	if !ok {
		return nil, fmt.Errorf("no job with id %d", id)
	}
	return job, nil
}

func runJobsPause(cmd *cobra.Command, args []string) error {
	job, err := lookupJob(args[0])
	if err != nil {
		return err
	}
	if !job.Pause() {
		return fmt.Errorf("job %d could not be paused from state %s", job.ID, job.State())
	}
	return nil
}

func runJobsResume(cmd *cobra.Command, args []string) error {
	job, err := lookupJob(args[0])
	if err != nil {
		return err
	}
	if !job.Resume() {
		return fmt.Errorf("job %d could not be resumed from state %s", job.ID, job.State())
	}
	return nil
}

func runJobsCancel(cmd *cobra.Command, args []string) error {
	id, err := parseJobID(args[0])
	if err != nil {
		return err
	}
	if !mgr.Cancel(id) {
		return fmt.Errorf("job %d could not be cancelled", id)
	}
	return nil
}

func runJobsWait(cmd *cobra.Command, args []string) error {
	job, err := lookupJob(args[0])
	if err != nil {
		return err
	}
	waitTerminal(job)
	fmt.Println(job.State())
	return nil
}

// waitTerminal polls a job's state until it reaches a terminal one. The
// core reports state transitions over a Subscription; polling here keeps
// the CLI's blocking wait independent of whether anything is subscribed.
func waitTerminal(job *jobs.Job) {
	for !job.State().Terminal() {
		time.Sleep(20 * time.Millisecond)
	}
}
