package javascript_test

import (
	"fmt"

	"github.com/matzehuels/vouchjs/pkg/deps/javascript"
)

func ExampleExtractLockfile() {
	lockfile := []byte(`{
  "dependencies": {
    "debug": {"version": "4.3.4", "dependencies": {"ms": {"version": "2.1.2"}}},
    "ms": {"version": "2.1.2"},
    "mocha": {"version": "10.2.0", "dev": true},
    "local-lib": {"version": ""}
  }
}`)

	records, err := javascript.ExtractLockfile(lockfile, false)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, r := range records {
		fmt.Println(r.Name, r.Version)
	}
	// Output:
	// debug 4.3.4
	// local-lib <missing>
	// ms 2.1.2
}
