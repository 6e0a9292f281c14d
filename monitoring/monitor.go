// Package monitoring turns a simulation into a server so that the state of
// the page table can be inspected while and after the reference string is
// replayed.
package monitoring

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/pagesim/vm"
)

// Monitor can turn a simulation into a server and allows external
// inspection of the page table engines it registers.
type Monitor struct {
	engines    []*vm.Engine
	nameIndex  map[string]int
	portNumber int
	openApp    bool
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		nameIndex: make(map[string]int),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser makes StartServer open the monitor URL in the default
// browser.
func (m *Monitor) WithBrowser() *Monitor {
	m.openApp = true
	return m
}

// RegisterEngine registers an engine to be monitored.
func (m *Monitor) RegisterEngine(e *vm.Engine) {
	if _, exists := m.nameIndex[e.Name()]; exists {
		panic("engine " + e.Name() + " already registered")
	}

	m.engines = append(m.engines, e)
	m.nameIndex[e.Name()] = len(m.engines) - 1
}

// StartServer starts the monitor as a web server with a custom port if
// wanted.
func (m *Monitor) StartServer() {
	r := m.router()

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	if m.openApp {
		err := browser.OpenURL(url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open browser: %s\n", err)
		}
	}

	go func() {
		err = http.Serve(listener, r)
		dieOnErr(err)
	}()
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/list_engines", m.listEngines)
	r.HandleFunc("/api/faults/{name}", m.listFaultCount)
	r.HandleFunc("/api/pagetable/{name}", m.listPageTable)
	r.HandleFunc("/api/state/{name}", m.listEngineState)
	r.HandleFunc("/api/resource", m.listResources)

	return r
}

func (m *Monitor) listEngines(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "[")
	for i, e := range m.engines {
		if i > 0 {
			fmt.Fprint(w, ",")
		}

		fmt.Fprintf(w, "%q", e.Name())
	}
	fmt.Fprint(w, "]")
}

func (m *Monitor) listFaultCount(w http.ResponseWriter, r *http.Request) {
	engine := m.findEngineOr404(w, mux.Vars(r)["name"])
	if engine == nil {
		return
	}

	fmt.Fprintf(w, "{\"algorithm\":%q,\"fault_count\":%d}",
		engine.Algorithm(), engine.FaultCount())
}

type pageRsp struct {
	Page  int  `json:"page"`
	Frame int  `json:"frame"`
	Valid bool `json:"valid"`
}

func (m *Monitor) listPageTable(w http.ResponseWriter, r *http.Request) {
	engine := m.findEngineOr404(w, mux.Vars(r)["name"])
	if engine == nil {
		return
	}

	table := engine.PageTable()

	rsp := make([]pageRsp, 0, table.PageCount())
	for n := 0; n < table.PageCount(); n++ {
		page := table.Page(n)
		rsp = append(rsp, pageRsp{
			Page:  page.Number,
			Frame: page.Frame,
			Valid: page.Valid,
		})
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listEngineState(w http.ResponseWriter, r *http.Request) {
	engine := m.findEngineOr404(w, mux.Vars(r)["name"])
	if engine == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(engine)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memorySize, err := proc.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) findEngineOr404(
	w http.ResponseWriter,
	name string,
) *vm.Engine {
	index, found := m.nameIndex[name]
	if !found {
		w.WriteHeader(404)
		return nil
	}

	return m.engines[index]
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
