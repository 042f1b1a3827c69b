//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedRncPath holds the path to a shared rnc binary built once for all tests.
	sharedRncPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getRncBinary returns the path to the rnc binary, building it once if needed.
func getRncBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "rnc-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		rncPath := filepath.Join(tempDir, "rnc")
		buildCmd := exec.Command("go", "build", "-o", rncPath, "./cmd/rnc")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build rnc: %v\n%s", err, out))
		}

		sharedRncPath = rncPath
	})

	return sharedRncPath
}

// writeFixture lays out a small Java/JSF project and returns its root.
func writeFixture(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "shop")
	files := map[string]string{
		"src/main/java/shop/Order.java": `package shop;

@Entity
@Table(name = "orders")
public class Order {
    public Long getId() {
        return id;
    }
}
`,
		"src/main/java/shop/OrderService.java": `package shop;

@Service
public class OrderService {
    public int total(int[] items) {
        int sum = 0;
        for (int i : items) {
            sum += i;
        }
        return sum;
    }
}
`,
		"src/main/java/shop/CartController.java": `package shop;

@Named
public class CartController extends BaseController {
    public void clear() {
        cart.reset();
    }
}
`,
		"src/main/resources/application.yml": "spring:\n  datasource:\n    url: jdbc:h2:mem:shop\n",
		"src/main/webapp/index.xhtml":        "<html/>",
		"target/classes/Stale.java":          "@Entity public class Stale {}",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// runRnc runs the binary from the project root and returns its combined output.
func runRnc(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getRncBinary(), args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}
