package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/pometrix/ledger-export/internal/domain/repository"
	"github.com/pometrix/ledger-export/internal/infrastructure/logger"
)

// fileNamePrefix and fileNamePattern define the sequential naming scheme of
// exported documents: Fact0001.txt, Fact0002.txt, ...
const fileNamePrefix = "Fact"

var fileNamePattern = regexp.MustCompile(`^Fact(\d{4})\.txt$`)

// NamingService assigns the next sequential output filename by inspecting
// the names already present in the store. Naming and upload are two store
// calls, not one atomic unit; concurrent exports can in principle race for
// a number, which the upstream accepts.
type NamingService struct {
	store  repository.FileStore
	logger logger.Logger
}

// NewNamingService creates a new naming service.
func NewNamingService(store repository.FileStore, log logger.Logger) *NamingService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &NamingService{
		store:  store,
		logger: log,
	}
}

// NextFileName returns the smallest unused name above the current maximum
// sequence number, starting at Fact0001.txt on an empty store. Names not
// matching the scheme are ignored.
func (s *NamingService) NextFileName(ctx context.Context) (string, error) {
	names, err := s.store.ListNames(ctx, fileNamePrefix)
	if err != nil {
		return "", fmt.Errorf("listing stored names: %w", err)
	}

	max := 0
	for _, name := range names {
		m := fileNamePattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		var n int
		fmt.Sscanf(m[1], "%d", &n)
		if n > max {
			max = n
		}
	}

	next := fmt.Sprintf("%s%04d.txt", fileNamePrefix, max+1)

	s.logger.Debug("Assigned next file name", map[string]interface{}{
		"existing": len(names),
		"next":     next,
	})

	return next, nil
}
