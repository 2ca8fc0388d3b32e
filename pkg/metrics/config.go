package metrics

// Config controls metric naming and histogram buckets.
type Config struct {
	Namespace string    `env:"NAMESPACE" envDefault:"restock"`
	Buckets   []float64 `env:"BUCKETS" envSeparator:"," envDefault:"0.005,0.01,0.025,0.05,0.1,0.25,0.5,1,2.5,5,10"`
	// Runtime adds the Go and process collectors.
	Runtime bool `env:"RUNTIME" envDefault:"true"`
}
