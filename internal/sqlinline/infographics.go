package sqlinline

const QInsertInfographic = `--sql 3b062479-ae20-4109-a8e5-2582b337c0db
insert into infographics (id, document)
values ($1::text, $2::jsonb);
`

// Insertion order is the seq column; callers never see it.
const QListInfographics = `--sql 36f46790-61bb-4a3e-9759-a14cc45724fa
select document
from infographics
order by seq asc
limit $1::int;
`

const QGetInfographicByID = `--sql 68bc1a61-7769-4d33-9bb4-e2c443b566bc
select document
from infographics
where id = $1::text;
`
