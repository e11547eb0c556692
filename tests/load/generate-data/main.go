// Seeds a load-test dataset into short_urls: a small hot set, a warm
// midsection and a large cold tail, so cache hit-rate experiments have
// a realistic skew to work against.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/snaplink/snaplink/internal/config"
	"github.com/snaplink/snaplink/internal/migrations"
)

const (
	HOT_COUNT  = 100
	WARM_COUNT = 10000
	COLD_COUNT = 1000000

	BATCH_SIZE  = 5000
	NUM_WORKERS = 4

	OWNER_COUNT = 50
)

type DataGenerator struct {
	pool   *pgxpool.Pool
	owners []uuid.UUID
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	if err := migrations.Up(cfg.Database.URL, slog.Default()); err != nil {
		log.Fatalf("Failed to run migrations: %v\n", err)
	}

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}

	owners := make([]uuid.UUID, OWNER_COUNT)
	for i := range owners {
		owners[i] = uuid.New()
	}

	gen := &DataGenerator{pool: pool, owners: owners}

	if err := gen.clearData(ctx); err != nil {
		log.Fatalf("Failed to clear data: %v\n", err)
	}

	if err := gen.insertHotURLs(ctx); err != nil {
		log.Fatalf("Failed to insert hot URLs: %v\n", err)
	}

	if err := gen.insertWarmURLs(ctx); err != nil {
		log.Fatalf("Failed to insert warm URLs: %v\n", err)
	}

	if err := gen.insertColdURLsParallel(ctx); err != nil {
		log.Fatalf("Failed to insert cold URLs: %v\n", err)
	}

	if err := gen.analyze(ctx); err != nil {
		log.Fatalf("Failed to analyze table: %v\n", err)
	}

	if err := gen.verifyData(ctx); err != nil {
		log.Printf("Warning: Data verification failed: %v\n", err)
	}
}

func (g *DataGenerator) owner(i int) uuid.UUID {
	return g.owners[i%len(g.owners)]
}

func (g *DataGenerator) clearData(ctx context.Context) error {
	_, err := g.pool.Exec(ctx, "TRUNCATE short_urls RESTART IDENTITY")
	return err
}

const insertQuery = `
	INSERT INTO short_urls (owner_id, original_url, short_code, click_count, created_at)
	VALUES ($1, $2, $3, $4, $5)`

func (g *DataGenerator) insertHotURLs(ctx context.Context) error {
	batch := &pgx.Batch{}

	for i := 1; i <= HOT_COUNT; i++ {
		shortCode := fmt.Sprintf("hot%04d", i)
		originalURL := fmt.Sprintf("https://youtube.com/watch?v=%06d", i)
		batch.Queue(insertQuery,
			g.owner(i), originalURL, shortCode, 10000+i,
			time.Now().Add(-time.Duration(i)*time.Minute),
		)
	}

	br := g.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec failed: %w", err)
		}
	}

	return nil
}

func (g *DataGenerator) insertWarmURLs(ctx context.Context) error {
	for start := 1; start <= WARM_COUNT; start += BATCH_SIZE {
		end := start + BATCH_SIZE - 1
		if end > WARM_COUNT {
			end = WARM_COUNT
		}

		batch := &pgx.Batch{}
		for i := start; i <= end; i++ {
			shortCode := fmt.Sprintf("warm%06d", i)
			originalURL := fmt.Sprintf("https://github.com/repo/%06d", i)
			batch.Queue(insertQuery,
				g.owner(i), originalURL, shortCode, 100+i%400,
				time.Now().Add(-time.Duration(i)*time.Hour),
			)
		}

		br := g.pool.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("batch exec failed: %w", err)
			}
		}
		br.Close()
	}

	return nil
}

func (g *DataGenerator) insertColdURLsParallel(ctx context.Context) error {
	var wg sync.WaitGroup
	errChan := make(chan error, NUM_WORKERS)
	progressChan := make(chan int, NUM_WORKERS)

	done := make(chan bool)
	go func() {
		total := 0
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case count := <-progressChan:
				total += count
			case <-ticker.C:
				log.Printf("cold inserts: %.1f%%", float64(total)/float64(COLD_COUNT)*100)
			case <-done:
				return
			}
		}
	}()

	rowsPerWorker := COLD_COUNT / NUM_WORKERS

	for workerID := 0; workerID < NUM_WORKERS; workerID++ {
		wg.Add(1)

		start := workerID*rowsPerWorker + 1
		end := start + rowsPerWorker - 1
		if workerID == NUM_WORKERS-1 {
			end = COLD_COUNT
		}

		go func(id, start, end int) {
			defer wg.Done()

			if err := g.insertColdURLsBatch(ctx, start, end, progressChan); err != nil {
				errChan <- fmt.Errorf("worker %d failed: %w", id, err)
			}
		}(workerID, start, end)
	}

	wg.Wait()
	close(done)
	close(errChan)

	for err := range errChan {
		return err
	}

	return nil
}

func (g *DataGenerator) insertColdURLsBatch(ctx context.Context, start, end int, progress chan<- int) error {
	for i := start; i <= end; i += BATCH_SIZE {
		batchEnd := i + BATCH_SIZE - 1
		if batchEnd > end {
			batchEnd = end
		}

		batch := &pgx.Batch{}
		for j := i; j <= batchEnd; j++ {
			shortCode := fmt.Sprintf("cold%07d", j)
			originalURL := fmt.Sprintf("https://example.com/page/%07d", j)
			batch.Queue(insertQuery,
				g.owner(j), originalURL, shortCode, j%3,
				time.Now().Add(-time.Duration(j)*time.Second),
			)
		}

		br := g.pool.SendBatch(ctx, batch)
		for k := 0; k < batch.Len(); k++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("batch exec failed: %w", err)
			}
		}
		br.Close()

		progress <- (batchEnd - i + 1)
	}

	return nil
}

func (g *DataGenerator) analyze(ctx context.Context) error {
	_, err := g.pool.Exec(ctx, "ANALYZE short_urls")
	return err
}

func (g *DataGenerator) verifyData(ctx context.Context) error {
	var count int64
	err := g.pool.QueryRow(ctx, "SELECT COUNT(*) FROM short_urls").Scan(&count)
	if err != nil {
		return err
	}

	expected := int64(HOT_COUNT + WARM_COUNT + COLD_COUNT)
	if count != expected {
		return fmt.Errorf("expected %d rows but got %d", expected, count)
	}

	return nil
}
