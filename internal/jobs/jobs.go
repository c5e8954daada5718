// Package jobs runs the background maintenance work: purging expired
// sessions and one-time tokens, and mailing teachers a digest of tasks
// due soon.
package jobs

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"homeschool/internal/email"
	"homeschool/internal/models"
	"homeschool/internal/repositories"
)

type Runner struct {
	cron        *cron.Cron
	sessionRepo *repositories.SessionRepository
	tokenRepo   *repositories.ActionTokenRepository
	taskRepo    *repositories.TaskRepository
	userRepo    *repositories.UserRepository
	emailer     email.Service
}

func NewRunner(
	sessionRepo *repositories.SessionRepository,
	tokenRepo *repositories.ActionTokenRepository,
	taskRepo *repositories.TaskRepository,
	userRepo *repositories.UserRepository,
	emailer email.Service,
) *Runner {
	return &Runner{
		cron:        cron.New(),
		sessionRepo: sessionRepo,
		tokenRepo:   tokenRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		emailer:     emailer,
	}
}

// Start registers the schedules and launches the cron loop.
func (r *Runner) Start() error {
	if _, err := r.cron.AddFunc("@hourly", r.purgeExpired); err != nil {
		return err
	}
	// 07:00 server time, before the school day starts.
	if _, err := r.cron.AddFunc("0 7 * * *", r.sendDueTaskDigests); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts scheduling and waits for running jobs to finish.
func (r *Runner) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Runner) purgeExpired() {
	if n, err := r.sessionRepo.DeleteExpired(); err != nil {
		log.Printf("jobs: purging sessions: %v", err)
	} else if n > 0 {
		log.Printf("jobs: purged %d expired sessions", n)
	}

	if n, err := r.tokenRepo.DeleteExpired(); err != nil {
		log.Printf("jobs: purging action tokens: %v", err)
	} else if n > 0 {
		log.Printf("jobs: purged %d expired action tokens", n)
	}
}

// sendDueTaskDigests mails each teacher the open tasks due in the next
// 24 hours.
func (r *Runner) sendDueTaskDigests() {
	now := time.Now().UTC()
	tasks, err := r.taskRepo.ListDueBetween(now, now.Add(24*time.Hour))
	if err != nil {
		log.Printf("jobs: listing due tasks: %v", err)
		return
	}

	byTeacher := map[uuid.UUID][]models.Task{}
	for _, t := range tasks {
		if t.Completed() {
			continue
		}
		byTeacher[t.TeacherID] = append(byTeacher[t.TeacherID], t)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for teacherID, due := range byTeacher {
		user, err := r.userRepo.FindUserByID(teacherID)
		if err != nil || user == nil {
			continue
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Hi %s,\n\nYou have %d task(s) due in the next 24 hours:\n\n", user.FirstName, len(due))
		for _, t := range due {
			if t.DueDate != nil {
				fmt.Fprintf(&b, "  - %s (due %s)\n", t.Title, t.DueDate.Format("Jan 2 15:04"))
			} else {
				fmt.Fprintf(&b, "  - %s\n", t.Title)
			}
		}

		msg := email.Message{
			ToEmail:  user.Email,
			ToName:   user.FirstName + " " + user.LastName,
			Subject:  fmt.Sprintf("%d task(s) due soon", len(due)),
			TextBody: b.String(),
		}
		if err := r.emailer.Send(ctx, msg); err != nil {
			log.Printf("jobs: sending digest to %s: %v", user.Email, err)
		}
	}
}
