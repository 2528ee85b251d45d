package main

import (
	"encoding/binary"
	"fmt"
	"log"

	"github.com/bdragon300/chainhash/chain"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Must be set before any table is populated
	chain.SetSeed(0x5eed)

	table, err := chain.New(chain.FlagKeyConst|chain.FlagValueConst, 0.1, chain.WithLogger(logger))
	if err != nil {
		logger.Fatal("Failed to create table", zap.Error(err))
	}
	defer table.Destroy()

	for i := 0; i < 1000; i++ {
		key := binary.BigEndian.AppendUint64(nil, uint64(i))
		value := binary.BigEndian.AppendUint32(nil, uint32(i*100))
		if err := table.Insert(key, value); err != nil {
			logger.Fatal("Failed to insert", zap.Int("key", i), zap.Error(err))
		}
	}
	fmt.Printf("Inserted %d keys, table has %d buckets\n", table.Len(), table.Cap())

	for i := 0; i < 1500; i += 250 {
		key := binary.BigEndian.AppendUint64(nil, uint64(i))
		if value, ok := table.Get(key); ok {
			fmt.Printf("Key %d => Value %d (bucket %d)\n", i, binary.BigEndian.Uint32(value), table.Index(key))
		} else {
			fmt.Printf("Key %d not found\n", i)
		}
	}

	table.Remove(binary.BigEndian.AppendUint64(nil, 0))
	fmt.Printf("After remove: %d keys\n", table.Len())

	info, err := table.DebugJSON()
	if err != nil {
		logger.Fatal("Failed to dump table", zap.Error(err))
	}
	fmt.Println(string(info))
}
