/*
	Basic script that fills a store with fake data to help create large
	datafiles for testing startup scan times.
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-faker/faker/v4"

	"caskdb"
)

const (
	totalKeys      = 10_000
	overwriteRatio = 5 // every Nth key is rewritten once to create dead space

	progressEvery = 1000
)

func main() {
	start := time.Now()
	fmt.Println("Starting caskdb data generator")

	store, err := caskdb.Open("books.db")
	if err != nil {
		fmt.Println("open error:", err)
		os.Exit(1)
	}
	defer store.Close()

	for i := 0; i < totalKeys; i++ {
		key := fmt.Sprintf("book-%05d", i)

		if err := store.Set(key, faker.Name()); err != nil {
			fmt.Printf("set error on %s: %v\n", key, err)
			os.Exit(1)
		}

		if i%overwriteRatio == 0 {
			if err := store.Set(key, faker.Name()); err != nil {
				fmt.Printf("rewrite error on %s: %v\n", key, err)
				os.Exit(1)
			}
		}

		if (i+1)%progressEvery == 0 {
			fmt.Printf("written %d keys\n", i+1)
		}
	}

	fmt.Printf("Load finished in %v\n", time.Since(start))
}
