package appointment

import "github.com/m04kA/SMC-SlotService/pkg/dbstore"

// Переиспользуем интерфейсы из dbstore для работы с БД
type DBExecutor = dbstore.DBExecutor
type TxExecutor = dbstore.TxExecutor
