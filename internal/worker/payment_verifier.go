package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-RentalBookingService/internal/auth"
)

const defaultRunTimeout = 2 * time.Minute

// Config настройки фоновой проверки оплат
type Config struct {
	Schedule     string        // cron-выражение, например "@every 1m"
	RunTimeout   time.Duration // ограничение на один проход
	ServiceToken string        // access token сервиса для удаленного API
}

// PaymentWorker периодически подтверждает оплаты QR / кошельков
// Проходы не перекрываются: следующий пропускается, пока идет предыдущий
type PaymentWorker struct {
	cron     *cron.Cron
	verifier PaymentVerifier
	cfg      Config
	logger   Logger
}

// NewPaymentWorker создает воркер и регистрирует задачу по расписанию
func NewPaymentWorker(verifier PaymentVerifier, cfg Config, logger Logger) (*PaymentWorker, error) {
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = defaultRunTimeout
	}

	cronLog := cronLogger{log: logger}
	w := &PaymentWorker{
		cron:     cron.New(cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)), cron.WithLogger(cronLog)),
		verifier: verifier,
		cfg:      cfg,
		logger:   logger,
	}

	if _, err := w.cron.AddFunc(cfg.Schedule, func() { w.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, cfg.Schedule, err)
	}

	return w, nil
}

// Start запускает планировщик в отдельной горутине
func (w *PaymentWorker) Start() {
	w.logger.Info("PaymentWorker: started, schedule=%s", w.cfg.Schedule)
	w.cron.Start()
}

// Stop останавливает планировщик и ждет завершения текущего прохода
func (w *PaymentWorker) Stop(ctx context.Context) error {
	done := w.cron.Stop()
	select {
	case <-done.Done():
		w.logger.Info("PaymentWorker: stopped")
		return nil
	case <-ctx.Done():
		w.logger.Warn("PaymentWorker: stop timed out: %v", ctx.Err())
		return ctx.Err()
	}
}

// RunOnce один проход проверки с учетными данными сервиса
func (w *PaymentWorker) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.cfg.RunTimeout)
	defer cancel()

	ctx = auth.WithCredentials(ctx, auth.ServiceCredentials(w.cfg.ServiceToken))

	report, err := w.verifier.VerifyPending(ctx)
	if err != nil {
		w.logger.Error("PaymentWorker: verification run failed: %v", err)
		return
	}
	if report != nil && report.Checked > 0 {
		w.logger.Info("PaymentWorker: run finished, checked=%d, verified=%d", report.Checked, report.Verified)
	}
}

// cronLogger адаптер логгера сервиса к cron.Logger
type cronLogger struct {
	log Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	// планировщик пишет о каждом запуске, это шум
	if msg == "wake" || msg == "run" {
		return
	}
	l.log.Info("Cron: %s%s", msg, formatKV(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("Cron: %s: %v%s", msg, err, formatKV(keysAndValues))
}

func formatKV(kv []interface{}) string {
	if len(kv) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, ", %v=%v", kv[i], kv[i+1])
	}
	return b.String()
}
