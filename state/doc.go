// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the durable ledger state.
// It follows the flow as below:
//
//	          o
//	          |
//	 [ revertable state ]
//	          |
//	   [ stacked map ] -> [ journal ] -> [ playback(staging) ] -> [ kv store ]
//	          |
//	    [ slot cache ]
//	          |
//	  [ read-only store ]
//
// Storage slots are plain (address, key) pairs persisted as RLP raw
// values. Checkpoints make every mutation sequence revertable until
// it is staged and committed as one batch.
package state
