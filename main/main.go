// Command main is a heap/CPU profiling harness for the codec.
package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rawbytedev/b39geo"
)

func main() {
	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()
	f, err := os.Create("mem.prof")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	runtime.MemProfileRate = 1

	codec := b39geo.Default()
	typos := []string{"mobi", "blsck", "thunde", "fortunee"}
	for i := 0; i < 10000; i++ {
		lat := float64(i%180) - 89.5
		lon := float64(i%360) - 179.5
		p, err := codec.Encode(lat, lon)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := codec.Decode(p.Slice()); err != nil {
			log.Fatal(err)
		}
		codec.TryParse(typos[i%4] + " black thunder fortune")
	}
	pprof.WriteHeapProfile(f)
	time.Sleep(5 * time.Minute)
}
