package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"

	"github.com/sparkle-network/sparkled/internal/core/domain"
	"github.com/sparkle-network/sparkled/internal/core/ports"
)

// DbManager is the badger storage backend, persisting trades on disk. An
// empty baseDbDir opens the store in memory, which is how tests use it.
type DbManager struct {
	store *badgerhold.Store
}

// NewDbManager opens the trade store under the given datadir.
func NewDbManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	var tradeDbDir string
	if len(baseDbDir) > 0 {
		tradeDbDir = filepath.Join(baseDbDir, "trades")
	}

	store, err := createDb(tradeDbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening trade db: %w", err)
	}

	return &DbManager{store}, nil
}

func (d *DbManager) TradeRepository() domain.TradeRepository {
	return tradeRepositoryImpl{d}
}

func (d *DbManager) Close() {
	d.store.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for {
				<-ticker.C
				if err := db.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}()
	}

	return db, nil
}
