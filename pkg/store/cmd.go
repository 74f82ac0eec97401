package store

import (
	"bytes"
	"encoding/binary"

	bolt "go.etcd.io/bbolt"

	"src.yle.sh/pkg/store/storedefs"
)

func init() {
	initDB["initialize command history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	}
}

func cmdBucket(tx *bolt.Tx) *bolt.Bucket { return tx.Bucket([]byte(bucketCmd)) }

// NextCmdSeq returns the sequence number the next added command will get.
func (s *dbStore) NextCmdSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		seq = cmdBucket(tx).Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddCmd appends a command to the history and returns its sequence number.
func (s *dbStore) AddCmd(text string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := cmdBucket(tx)
		var err error
		if seq, err = b.NextSequence(); err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(text))
	})
	return int(seq), err
}

// DelCmd deletes the command with the given sequence number. Deleting a
// missing command is not an error.
func (s *dbStore) DelCmd(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return cmdBucket(tx).Delete(marshalSeq(uint64(seq)))
	})
}

// Cmd returns the command with the given sequence number.
func (s *dbStore) Cmd(seq int) (string, error) {
	var text string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := cmdBucket(tx).Get(marshalSeq(uint64(seq)))
		if v == nil {
			return storedefs.ErrNoMatchingCmd
		}
		text = string(v)
		return nil
	})
	return text, err
}

// CmdsWithSeq returns the commands with sequence numbers in [from, upto), in
// order.
func (s *dbStore) CmdsWithSeq(from, upto int) ([]storedefs.Cmd, error) {
	var cmds []storedefs.Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := cmdBucket(tx).Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			cmds = append(cmds, storedefs.Cmd{Text: string(v), Seq: int(unmarshalSeq(k))})
		}
		return nil
	})
	return cmds, err
}

// NextCmd finds the first command at or after from that starts with prefix.
func (s *dbStore) NextCmd(from int, prefix string) (storedefs.Cmd, error) {
	var cmd storedefs.Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := cmdBucket(tx).Cursor()
		p := []byte(prefix)
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil; k, v = c.Next() {
			if bytes.HasPrefix(v, p) {
				cmd = storedefs.Cmd{Text: string(v), Seq: int(unmarshalSeq(k))}
				return nil
			}
		}
		return storedefs.ErrNoMatchingCmd
	})
	return cmd, err
}

// PrevCmd finds the last command before upto that starts with prefix.
func (s *dbStore) PrevCmd(upto int, prefix string) (storedefs.Cmd, error) {
	var cmd storedefs.Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := cmdBucket(tx).Cursor()
		p := []byte(prefix)

		var k, v []byte
		if k, _ = c.Seek(marshalSeq(uint64(upto))); k == nil {
			// Everything is before upto.
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}
		for ; k != nil; k, v = c.Prev() {
			if bytes.HasPrefix(v, p) {
				cmd = storedefs.Cmd{Text: string(v), Seq: int(unmarshalSeq(k))}
				return nil
			}
		}
		return storedefs.ErrNoMatchingCmd
	})
	return cmd, err
}

// Sequence numbers are stored big endian, so that bbolt's byte order is the
// numeric order.
func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
