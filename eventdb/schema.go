// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

// create a table for pool activities
const activityTableSchema = `
create table if not exists activity (
	seq integer primary key autoincrement,
	ts decimal(32,0),
	kind text,
	account blob(20),
	amount blob,
	phase integer
);

CREATE INDEX if not exists activityTimeIndex on activity(ts);
CREATE INDEX if not exists activityKindIndex on activity(kind);
CREATE INDEX if not exists activityAccountIndex on activity(account);
`
