package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"wallet-analyzer-go/internal/models"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	filePrefix  = "trade-ledger-"
	fileExt     = ".csv"
	ContentType = "text/csv; charset=utf-8"
)

// Columns is the fixed header and column order of an exported ledger.
var Columns = []string{"timestamp", "type", "from_token", "to_token", "price_after_60s", "profit_or_loss"}

// Filename returns the download name for a wallet's ledger. The address is embedded verbatim.
func Filename(walletAddress string) string {
	return filePrefix + walletAddress + fileExt
}

// WriteCSV writes the header and one row per record, in ledger order.
func WriteCSV(w io.Writer, ledger []models.TradeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(Columns))
	for i, t := range ledger {
		row[0] = strconv.FormatInt(t.Timestamp, 10)
		row[1] = t.Type
		row[2] = t.FromToken
		row[3] = t.ToToken
		row[4] = ""
		if t.PriceAfter60s != nil {
			row[4] = formatNumber(*t.PriceAfter60s)
		}
		row[5] = formatNumber(t.ProfitOrLoss)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatNumber writes v with every significant digit and at least two decimals,
// so 10 becomes "10.00" and 0.00002134 stays "0.00002134".
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s + ".00"
	}
	if decimals := len(s) - dot - 1; decimals < 2 {
		s += strings.Repeat("0", 2-decimals)
	}
	return s
}

// Download is a generated ledger file spooled on the exporter's filesystem.
// It must be released once it has been handed to the user.
type Download struct {
	Filename    string
	ContentType string

	fs   afero.Fs
	path string
	size int64

	once       sync.Once
	releaseErr error
	released   bool
	mu         sync.Mutex
}

// Size returns the content length in bytes.
func (d *Download) Size() int64 {
	return d.size
}

// Open returns a reader over the generated content.
func (d *Download) Open() (afero.File, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return nil, fmt.Errorf("download %s already released", d.Filename)
	}
	return d.fs.Open(d.path)
}

// Release removes the spooled content. Only the first call has an effect.
func (d *Download) Release() error {
	d.once.Do(func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.released = true
		d.releaseErr = d.fs.Remove(d.path)
	})
	return d.releaseErr
}

// Released reports whether Release has run.
func (d *Download) Released() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.released
}

// LedgerExporter turns a trade ledger into a downloadable CSV file. At most one
// download made by Export is outstanding; creating a new one releases the previous
// one first. Downloads scoped by With belong to their caller and are never released
// by another export.
type LedgerExporter struct {
	fs     afero.Fs
	dir    string
	logger *zap.Logger

	mu      sync.Mutex
	current *Download
}

// NewLedgerExporter creates an exporter that spools files under dir on fs.
func NewLedgerExporter(fs afero.Fs, dir string, logger *zap.Logger) *LedgerExporter {
	return &LedgerExporter{
		fs:     fs,
		dir:    dir,
		logger: logger.Named("exporter"),
	}
}

// Export releases any previous download and generates a new one for the ledger.
func (e *LedgerExporter) Export(ledger []models.TradeRecord, walletAddress string) (*Download, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current != nil {
		e.release(e.current)
		e.current = nil
	}

	d, err := e.spool(ledger, walletAddress)
	if err != nil {
		return nil, err
	}
	e.current = d
	return d, nil
}

// spool writes the ledger to a new uniquely named file. It does not touch current,
// so concurrent callers never share a download.
func (e *LedgerExporter) spool(ledger []models.TradeRecord, walletAddress string) (*Download, error) {
	if err := e.fs.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create spool directory: %w", err)
	}

	// The spool name never contains the address, which is free-form.
	path := filepath.Join(e.dir, "ledger-"+uuid.NewString()+fileExt)
	f, err := e.fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create spool file: %w", err)
	}

	if err := WriteCSV(f, ledger); err != nil {
		f.Close()
		_ = e.fs.Remove(path)
		return nil, fmt.Errorf("failed to write ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = e.fs.Remove(path)
		return nil, fmt.Errorf("failed to close spool file: %w", err)
	}

	info, err := e.fs.Stat(path)
	if err != nil {
		_ = e.fs.Remove(path)
		return nil, fmt.Errorf("failed to stat spool file: %w", err)
	}

	d := &Download{
		Filename:    Filename(walletAddress),
		ContentType: ContentType,
		fs:          e.fs,
		path:        path,
		size:        info.Size(),
	}

	e.logger.Info("Ledger exported",
		zap.String("file", d.Filename),
		zap.Int("records", len(ledger)),
		zap.Int64("bytes", d.size),
	)
	return d, nil
}

// With exports the ledger, passes the download to fn and releases it afterwards
// on every path. The download is private to this call.
func (e *LedgerExporter) With(ledger []models.TradeRecord, walletAddress string, fn func(*Download) error) error {
	d, err := e.spool(ledger, walletAddress)
	if err != nil {
		return err
	}
	defer e.release(d)
	return fn(d)
}

// Close releases the outstanding download, if any.
func (e *LedgerExporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return nil
	}
	err := e.current.Release()
	e.current = nil
	return err
}

func (e *LedgerExporter) release(d *Download) {
	if err := d.Release(); err != nil {
		e.logger.Warn("Failed to release download", zap.String("file", d.Filename), zap.Error(err))
	}
}
