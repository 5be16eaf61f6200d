package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/kubev2v/task-engine/api/v1"
	"github.com/kubev2v/task-engine/test/e2e/service"
)

var _ = Describe("task engine", Ordered, func() {
	var svc *service.TaskEngineSvc

	stateOf := func(id uuid.UUID) func() (v1.TaskState, error) {
		return func() (v1.TaskState, error) {
			t, err := svc.GetTask(id)
			if err != nil {
				return "", err
			}
			return t.State, nil
		}
	}

	BeforeAll(func() {
		svc = service.NewTaskEngineService(cfg.APIUrl, cfg.Timeout)
		Eventually(svc.Health, cfg.PollTimeout, 500*time.Millisecond).Should(Succeed())
	})

	BeforeEach(func() {
		_, err := svc.ClearPool()
		Expect(err).NotTo(HaveOccurred())
	})

	Context("running tasks", func() {
		// Given a running engine
		// When a log task and a sleep task are submitted and the pool is run
		// Then both complete
		It("should complete submitted tasks", func() {
			// Arrange
			logTask, err := svc.SubmitLog("e2e-log", "hello from e2e")
			Expect(err).NotTo(HaveOccurred())
			sleepTask, err := svc.SubmitSleep("e2e-sleep", 200*time.Millisecond)
			Expect(err).NotTo(HaveOccurred())

			// Act
			_, err = svc.RunPool()
			Expect(err).NotTo(HaveOccurred())

			// Assert
			Eventually(stateOf(logTask.Id), cfg.PollTimeout).Should(Equal(v1.TaskStateCompleted))
			Eventually(stateOf(sleepTask.Id), cfg.PollTimeout).Should(Equal(v1.TaskStateCompleted))

			done, err := svc.GetTask(sleepTask.Id)
			Expect(err).NotTo(HaveOccurred())
			Expect(done.StartedAt).NotTo(BeNil())
			Expect(done.FinishedAt).NotTo(BeNil())
		})

		It("should reject an invalid workload", func() {
			_, err := svc.Submit(v1.CreateTaskRequest{Kind: "shell"})

			var apiErr *service.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("should return 404 for an unknown task", func() {
			_, err := svc.GetTask(uuid.New())

			var apiErr *service.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Context("controlling the pool", func() {
		It("should cancel a task queued while the pool is stopped", func() {
			_, err := svc.TerminatePool()
			Expect(err).NotTo(HaveOccurred())

			task, err := svc.SubmitLog("e2e-cancel", "never printed")
			Expect(err).NotTo(HaveOccurred())

			canceled, err := svc.CancelTask(task.Id)
			Expect(err).NotTo(HaveOccurred())
			Expect(canceled.State).To(Equal(v1.TaskStateCanceled))

			list, err := svc.ListTasks(v1.TaskStateCanceled)
			Expect(err).NotTo(HaveOccurred())
			Expect(list.Tasks).To(ContainElement(HaveField("Id", task.Id)))
		})

		It("should drop queued tasks on clear", func() {
			_, err := svc.TerminatePool()
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.SubmitLog("e2e-clear-1", "a")
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.SubmitLog("e2e-clear-2", "b")
			Expect(err).NotTo(HaveOccurred())

			dropped, err := svc.ClearPool()
			Expect(err).NotTo(HaveOccurred())
			Expect(dropped).To(Equal(2))

			status, err := svc.GetPool()
			Expect(err).NotTo(HaveOccurred())
			Expect(status.Queued).To(Equal(0))
		})
	})

	Context("observability", func() {
		It("should expose pool metrics", func() {
			text, err := svc.Metrics()
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(ContainSubstring("task_engine_pool_tasks_submitted_total"))
			Expect(text).To(ContainSubstring("task_engine_pool_tasks_queued"))
		})
	})
})
