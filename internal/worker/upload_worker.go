package worker

import (
	"context"
	"encoding/json"
	"path"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jukulab/classdesk-backend/internal/config"
	"github.com/jukulab/classdesk-backend/internal/drive"
	"github.com/jukulab/classdesk-backend/internal/service"
)

// UploadWorker consumes the sheet-upload queue, renders each record's
// evaluation sheet, and pushes it to drive storage. Upload failures never
// reach the API caller; they are logged and the job is dropped so one bad
// record cannot wedge the queue.
type UploadWorker struct {
	sheetService *service.SheetService
	driveClient  drive.Client
	rdb          *redis.Client
	baseFolder   string
	log          zerolog.Logger
}

// NewUploadWorker creates a new UploadWorker.
func NewUploadWorker(sheetService *service.SheetService, driveClient drive.Client, rdb *redis.Client, baseFolder string, log zerolog.Logger) *UploadWorker {
	return &UploadWorker{
		sheetService: sheetService,
		driveClient:  driveClient,
		rdb:          rdb,
		baseFolder:   baseFolder,
		log:          log.With().Str("component", "upload_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *UploadWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining jobs before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *UploadWorker) processNext(ctx context.Context) {
	// BLPop blocks until a job is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, config.SheetUploadQueue).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}
	w.handleJob(ctx, []byte(result[1]))
}

func (w *UploadWorker) handleJob(ctx context.Context, raw []byte) {
	var job service.UploadJob
	if err := json.Unmarshal(raw, &job); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error")
		return
	}

	sheet, err := w.sheetService.Generate(ctx, job.RecordID)
	if err != nil {
		w.log.Error().Err(err).Str("record_id", job.RecordID).Msg("Render error, dropping job")
		return
	}

	if err := w.driveClient.Authenticate(ctx); err != nil {
		w.log.Warn().Err(err).Str("record_id", job.RecordID).Msg("Drive not authenticated, dropping job")
		return
	}

	folderID, err := w.driveClient.EnsureFolder(ctx, path.Join(w.baseFolder, sheet.Record.StudentName))
	if err != nil {
		w.log.Error().Err(err).Str("record_id", job.RecordID).Msg("Folder error, dropping job")
		return
	}

	fileID, err := w.driveClient.Upload(ctx, sheet.PNG, sheet.Filename, folderID)
	if err != nil {
		w.log.Error().Err(err).Str("record_id", job.RecordID).Msg("Upload error, dropping job")
		return
	}

	w.log.Info().
		Str("record_id", job.RecordID).
		Str("file_id", fileID).
		Str("filename", sheet.Filename).
		Msg("Sheet uploaded")
}

// drain processes all remaining jobs in the queue before shutdown.
func (w *UploadWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.SheetUploadQueue).Result()
		if err != nil {
			break
		}
		w.handleJob(ctx, []byte(result))
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining jobs")
	}
}
