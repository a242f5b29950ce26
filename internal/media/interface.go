package media

import "context"

// Interface est l'abstraction du décodeur utilisée par l'application.
// Elle facilite le test en autorisant une implémentation factice.
type Interface interface {
	CheckBinaries() error
	GetVersion(ctx context.Context) (string, error)
	Decode(ctx context.Context, path string) (*SampleBuffer, error)
}
